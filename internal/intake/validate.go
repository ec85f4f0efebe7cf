package intake

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

const (
	minAge = 1
	maxAge = 120

	// Family-member ages are constrained tighter than the head of household.
	minFamilyAge = 10
	maxFamilyAge = 100
)

var (
	alphaSpaceRe = regexp.MustCompile(`^[A-Za-z ]+$`)
	mobileRe     = regexp.MustCompile(`^[0-9]{11}$`)
)

// identityRules mirrors the Identity fields the validator can express
// declaratively; the alpha-only and mobile rules are registered as custom
// validations below.
type identityRules struct {
	FirstName   string `validate:"required,alphaspace"`
	MiddleName  string `validate:"omitempty,alphaspace"`
	LastName    string `validate:"required,alphaspace"`
	Mobile      string `validate:"required,mobileph"`
	Age         int    `validate:"required,min=1,max=120"`
	Gender      string `validate:"required"`
	CivilStatus string `validate:"required"`
	Email       string `validate:"omitempty,email"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return alphaSpaceRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("mobileph", func(fl validator.FieldLevel) bool {
		return mobileRe.MatchString(fl.Field().String())
	})
	return v
}

var identityMessages = map[string]string{
	"FirstName":   "first_name",
	"MiddleName":  "middle_name",
	"LastName":    "last_name",
	"Mobile":      "mobile",
	"Age":         "age",
	"Gender":      "gender",
	"CivilStatus": "civil_status",
	"Email":       "email",
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "alphaspace":
		return "letters only"
	case "mobileph":
		return "must be exactly 11 digits"
	case "email":
		return "invalid email address"
	case "min", "max":
		return fmt.Sprintf("must be between %d and %d", minAge, maxAge)
	default:
		return "invalid"
	}
}

// ValidateIdentity checks the step-1 scalar fields and the address cascade.
// Errors are keyed by form field so they can be shown inline.
func ValidateIdentity(id Identity, addr Address) error {
	ve := types.NewValidationError()

	rules := identityRules{
		FirstName:   id.FirstName,
		MiddleName:  id.MiddleName,
		LastName:    id.LastName,
		Mobile:      id.Mobile,
		Age:         id.Age,
		Gender:      id.Gender,
		CivilStatus: id.CivilStatus,
		Email:       id.Email,
	}
	if err := validate.Struct(rules); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				ve.Add(identityMessages[fe.StructField()], messageFor(fe.Tag()))
			}
		} else {
			ve.Add("identity", "invalid")
		}
	}

	// The address hierarchy must be filled top-down; a lower-level value
	// with a cleared parent is unreachable through the setters, but a draft
	// restored from the client is still checked.
	if addr.Region == "" {
		ve.Add("region", "required")
	}
	if addr.Province == "" {
		ve.Add("province", "required")
	} else if addr.Region == "" {
		ve.Add("province", "select a region first")
	}
	if addr.City == "" {
		ve.Add("city", "required")
	} else if addr.Province == "" {
		ve.Add("city", "select a province first")
	}
	if addr.BrgyName == "" {
		ve.Add("brgy_name", "required")
	} else if addr.City == "" {
		ve.Add("brgy_name", "select a city or municipality first")
	}

	return ve.OrNil()
}

// ValidateConditions requires every step-2 group to carry a selection.
func ValidateConditions(c Conditions) error {
	ve := types.NewValidationError()
	if c.FourPs != "yes" && c.FourPs != "no" {
		ve.Add("four_ps", "required")
	}
	groups := []struct {
		field string
		tags  []string
	}{
		{"housing", c.Housing},
		{"health", c.Health},
		{"casualty", c.Casualty},
		{"ownership", c.Ownership},
		{"codes", c.Codes},
	}
	for _, g := range groups {
		if len(g.tags) == 0 {
			ve.Add(g.field, "select at least one")
		}
	}
	return ve.OrNil()
}

// ValidateFamily checks every step-3 row. Empty rows are always valid; a row
// with any data must be complete, with age inside [10, 100].
func ValidateFamily(rows []Row) error {
	ve := types.NewValidationError()
	for i, row := range rows {
		if !row.HasData() {
			continue
		}
		prefix := "family." + strconv.Itoa(i) + "."
		if row.Name == "" {
			ve.Add(prefix+"name", "required")
		}
		if row.Relation == "" {
			ve.Add(prefix+"relation", "required")
		}
		if row.Age < minFamilyAge || row.Age > maxFamilyAge {
			ve.Add(prefix+"age", fmt.Sprintf("must be between %d and %d", minFamilyAge, maxFamilyAge))
		}
		if row.Gender == "" {
			ve.Add(prefix+"gender", "required")
		}
		if row.CivilStatus == "" {
			ve.Add(prefix+"civil_status", "required")
		}
	}
	return ve.OrNil()
}

// HasAnyFamilyData reports whether any row carries data; with none, the
// wizard asks the operator to confirm the beneficiary lives alone.
func HasAnyFamilyData(rows []Row) bool {
	for _, row := range rows {
		if row.HasData() {
			return true
		}
	}
	return false
}
