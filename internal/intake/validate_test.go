package intake

import (
	"reflect"
	"testing"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

func validIdentity() Identity {
	return Identity{
		FirstName:   "Maria",
		MiddleName:  "Santos",
		LastName:    "Cruz",
		Mobile:      "09171234567",
		Age:         34,
		Gender:      "Female",
		CivilStatus: "Married",
		Email:       "maria@example.com",
	}
}

func validAddress() Address {
	return Address{
		Region:      "Region IV-A",
		Province:    "Laguna",
		City:        "Calamba",
		BrgyName:    "san isidro",
		HouseNumber: "123",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}
	ve, ok := types.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Fields
}

func TestValidateIdentityFieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Identity)
		field  string
	}{
		{"missing_first_name", func(id *Identity) { id.FirstName = "" }, "first_name"},
		{"numeric_first_name", func(id *Identity) { id.FirstName = "Maria2" }, "first_name"},
		{"short_mobile", func(id *Identity) { id.Mobile = "0917123456" }, "mobile"},
		{"alpha_mobile", func(id *Identity) { id.Mobile = "0917123456a" }, "mobile"},
		{"zero_age", func(id *Identity) { id.Age = 0 }, "age"},
		{"age_out_of_range", func(id *Identity) { id.Age = 130 }, "age"},
		{"bad_email", func(id *Identity) { id.Email = "not-an-email" }, "email"},
		{"missing_gender", func(id *Identity) { id.Gender = "" }, "gender"},
		{"missing_civil_status", func(id *Identity) { id.CivilStatus = "" }, "civil_status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := validIdentity()
			tc.mutate(&id)
			fields := fieldErrors(t, ValidateIdentity(id, validAddress()))
			if _, ok := fields[tc.field]; !ok {
				t.Fatalf("expected error keyed by %q, got %v", tc.field, fields)
			}
		})
	}
}

func TestValidateIdentityAcceptsValidInput(t *testing.T) {
	if err := ValidateIdentity(validIdentity(), validAddress()); err != nil {
		t.Fatalf("valid identity rejected: %v", err)
	}
}

func TestValidateIdentityOptionalFields(t *testing.T) {
	id := validIdentity()
	id.MiddleName = ""
	id.Email = ""
	if err := ValidateIdentity(id, validAddress()); err != nil {
		t.Fatalf("middle name and email are optional: %v", err)
	}
}

func TestAddressCascade(t *testing.T) {
	addr := validAddress()

	addr.SetCity("Los Banos")
	if addr.BrgyName != "" {
		t.Fatalf("changing city must clear barangay, got %q", addr.BrgyName)
	}
	if addr.Province != "Laguna" {
		t.Fatalf("changing city must not touch province")
	}

	addr = validAddress()
	addr.SetProvince("Batangas")
	if addr.City != "" || addr.BrgyName != "" {
		t.Fatalf("changing province must clear city and barangay: %+v", addr)
	}

	addr = validAddress()
	addr.SetRegion("Region V")
	if addr.Province != "" || addr.City != "" || addr.BrgyName != "" {
		t.Fatalf("changing region must clear all dependents: %+v", addr)
	}

	// Re-selecting the same value is not a change and keeps dependents.
	addr = validAddress()
	addr.SetRegion("Region IV-A")
	if addr.Province != "Laguna" {
		t.Fatalf("re-selecting the same region must keep dependents")
	}
}

func TestValidateIdentityRejectsBrokenHierarchy(t *testing.T) {
	addr := validAddress()
	addr.Region = ""
	fields := fieldErrors(t, ValidateIdentity(validIdentity(), addr))
	if _, ok := fields["region"]; !ok {
		t.Fatalf("cleared region must be flagged: %v", fields)
	}
	if _, ok := fields["province"]; !ok {
		t.Fatalf("province under a cleared region must be flagged: %v", fields)
	}
}

func TestToggleTagNoneExclusivity(t *testing.T) {
	tags := []string{"Totally Damaged", "Partially Damaged"}

	tags = ToggleTag(tags, NoneTag)
	if !reflect.DeepEqual(tags, []string{NoneTag}) {
		t.Fatalf("selecting None must clear the group: %v", tags)
	}

	tags = ToggleTag(tags, "Totally Damaged")
	if !reflect.DeepEqual(tags, []string{"Totally Damaged"}) {
		t.Fatalf("selecting a value must drop None: %v", tags)
	}

	tags = ToggleTag(tags, "Totally Damaged")
	if len(tags) != 0 {
		t.Fatalf("re-selecting a value must deselect it: %v", tags)
	}
}

func TestValidateConditionsRequiresEveryGroup(t *testing.T) {
	c := Conditions{
		FourPs:    "yes",
		Housing:   []string{"Partially Damaged"},
		Health:    []string{NoneTag},
		Casualty:  []string{NoneTag},
		Ownership: []string{"Owned"},
		Codes:     []string{NoneTag},
	}
	if err := ValidateConditions(c); err != nil {
		t.Fatalf("complete conditions rejected: %v", err)
	}

	c.Health = nil
	fields := fieldErrors(t, ValidateConditions(c))
	if _, ok := fields["health"]; !ok {
		t.Fatalf("empty health group must be flagged: %v", fields)
	}

	c.Health = []string{NoneTag}
	c.FourPs = ""
	fields = fieldErrors(t, ValidateConditions(c))
	if _, ok := fields["four_ps"]; !ok {
		t.Fatalf("missing 4Ps answer must be flagged: %v", fields)
	}
}

func TestValidateFamilyRows(t *testing.T) {
	complete := Row{Name: "Jose Cruz", Relation: "Son", Age: 15, Gender: "Male", CivilStatus: "Single"}

	cases := []struct {
		name  string
		rows  []Row
		valid bool
	}{
		{"empty_row_is_valid", []Row{{}}, true},
		{"no_rows", nil, true},
		{"complete_row", []Row{complete}, true},
		{"name_only", []Row{{Name: "Jose Cruz"}}, false},
		{"age_below_range", []Row{{Name: "Jose", Relation: "Son", Age: 5, Gender: "Male", CivilStatus: "Single"}}, false},
		{"age_at_upper_bound", []Row{{Name: "Lola", Relation: "Grandmother", Age: 100, Gender: "Female", CivilStatus: "Widowed"}}, true},
		{"age_at_lower_bound", []Row{{Name: "Jose", Relation: "Son", Age: 10, Gender: "Male", CivilStatus: "Single"}}, true},
		{"mixed_empty_and_complete", []Row{{}, complete, {}}, true},
		{"mixed_empty_and_partial", []Row{{}, {Name: "Jose Cruz"}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFamily(tc.rows)
			if tc.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("expected rejection")
			}
		})
	}
}
