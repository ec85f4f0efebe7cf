package intake

// Draft is the single record the three wizard steps cooperate on. It is
// JSON-serializable so a session can park in Redis between requests.
type Draft struct {
	Identity   Identity   `json:"identity"`
	Address    Address    `json:"address"`
	Conditions Conditions `json:"conditions"`
	Family     []Row      `json:"family"`
}

type Identity struct {
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	Mobile      string `json:"mobile"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	CivilStatus string `json:"civil_status"`
	Ethnicity   string `json:"ethnicity"`
	Religion    string `json:"religion"`
	Email       string `json:"email"`
	Occupation  string `json:"occupation"`
	// MonthlyIncome stays a string: the form offers income brackets.
	MonthlyIncome string `json:"monthly_income"`
}

// Address is the cascading selector: region → province → city/municipality →
// barangay. Setting a higher-level unit clears every dependent selection, so
// a stale lower-level choice can never survive a change above it.
type Address struct {
	Region      string `json:"region"`
	Province    string `json:"province"`
	City        string `json:"city"`
	BrgyName    string `json:"brgy_name"`
	HouseNumber string `json:"house_number"`
}

func (a *Address) SetRegion(region string) {
	if a.Region != region {
		a.Province = ""
		a.City = ""
		a.BrgyName = ""
	}
	a.Region = region
}

func (a *Address) SetProvince(province string) {
	if a.Province != province {
		a.City = ""
		a.BrgyName = ""
	}
	a.Province = province
}

func (a *Address) SetCity(city string) {
	if a.City != city {
		a.BrgyName = ""
	}
	a.City = city
}

func (a *Address) SetBrgyName(brgyName string) {
	a.BrgyName = brgyName
}

// Conditions holds the step-2 selection groups. Every group must end up
// non-empty; multi-select groups honor the "None" sentinel (see ToggleTag).
type Conditions struct {
	FourPs    string   `json:"four_ps"`
	Housing   []string `json:"housing"`
	Health    []string `json:"health"`
	Casualty  []string `json:"casualty"`
	Ownership []string `json:"ownership"`
	Codes     []string `json:"codes"`
}

// NoneTag is the sentinel that excludes every other selection in its group.
const NoneTag = "None"

// ToggleTag applies a click on value to a multi-select group. Selecting
// "None" collapses the group to just it; selecting anything else drops a
// present "None". Clicking an already-selected value deselects it.
func ToggleTag(tags []string, value string) []string {
	for i, t := range tags {
		if t == value {
			return append(append([]string{}, tags[:i]...), tags[i+1:]...)
		}
	}
	if value == NoneTag {
		return []string{NoneTag}
	}
	out := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		if t != NoneTag {
			out = append(out, t)
		}
	}
	return append(out, value)
}

// Row is one family-member line in step 3. An all-empty row is skippable;
// a partially-filled one must be completed before submission.
type Row struct {
	Name        string `json:"name"`
	Relation    string `json:"relation"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	CivilStatus string `json:"civil_status"`
	Education   string `json:"education"`
	Skills      string `json:"skills"`
	Remarks     string `json:"remarks"`
}

func (r Row) HasData() bool {
	return r.Name != "" || r.Relation != "" || r.Age != 0 ||
		r.Gender != "" || r.CivilStatus != "" || r.Education != "" ||
		r.Skills != "" || r.Remarks != ""
}
