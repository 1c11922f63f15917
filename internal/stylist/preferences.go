package stylist

import "fmt"

// Option is a selectable preference value with its display label.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field names a preference field.
type Field string

const (
	FieldGender   Field = "gender"
	FieldStyle    Field = "style"
	FieldOccasion Field = "occasion"
	FieldBudget   Field = "budget"
)

// Fields lists preference fields in form order.
var Fields = []Field{FieldGender, FieldStyle, FieldOccasion, FieldBudget}

var (
	GenderOptions = []Option{
		{Value: "female", Label: "Female"},
		{Value: "male", Label: "Male"},
		{Value: "non-binary", Label: "Non-binary"},
	}
	StyleOptions = []Option{
		{Value: "casual", Label: "Casual"},
		{Value: "formal", Label: "Formal"},
		{Value: "street", Label: "Street"},
		{Value: "bohemian", Label: "Bohemian"},
		{Value: "minimalist", Label: "Minimalist"},
		{Value: "classic", Label: "Classic"},
	}
	OccasionOptions = []Option{
		{Value: "everyday", Label: "Everyday Wear"},
		{Value: "work", Label: "Work/Office"},
		{Value: "party", Label: "Party/Event"},
		{Value: "date", Label: "Date Night"},
		{Value: "formal", Label: "Formal Event"},
	}
	BudgetOptions = []Option{
		{Value: "budget", Label: "Budget Friendly (₹)"},
		{Value: "mid", Label: "Mid Range (₹₹)"},
		{Value: "premium", Label: "Premium (₹₹₹)"},
		{Value: "luxury", Label: "Luxury (₹₹₹₹)"},
	}
)

// OptionsFor returns the allowed options of a field.
func OptionsFor(f Field) []Option {
	switch f {
	case FieldGender:
		return GenderOptions
	case FieldStyle:
		return StyleOptions
	case FieldOccasion:
		return OccasionOptions
	case FieldBudget:
		return BudgetOptions
	}
	return nil
}

// Label returns the display label for value, or value itself if unknown.
func Label(f Field, value string) string {
	for _, opt := range OptionsFor(f) {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

func validOption(f Field, value string) error {
	for _, opt := range OptionsFor(f) {
		if opt.Value == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q", ErrInvalidOption, f, value)
}

// Preferences is the user's style profile. Empty strings mean unset.
type Preferences struct {
	Gender   string `json:"gender"`
	Style    string `json:"style"`
	Occasion string `json:"occasion"`
	Budget   string `json:"budget"`
}

// Complete reports whether all four fields are set.
func (p Preferences) Complete() bool {
	return p.Gender != "" && p.Style != "" && p.Occasion != "" && p.Budget != ""
}

// Get returns the value of a field.
func (p Preferences) Get(f Field) string {
	switch f {
	case FieldGender:
		return p.Gender
	case FieldStyle:
		return p.Style
	case FieldOccasion:
		return p.Occasion
	case FieldBudget:
		return p.Budget
	}
	return ""
}

// Set validates value and replaces the field's prior value.
func (p *Preferences) Set(f Field, value string) error {
	if err := validOption(f, value); err != nil {
		return err
	}
	switch f {
	case FieldGender:
		p.Gender = value
	case FieldStyle:
		p.Style = value
	case FieldOccasion:
		p.Occasion = value
	case FieldBudget:
		p.Budget = value
	}
	return nil
}

// Missing lists the fields still unset, in form order.
func (p Preferences) Missing() []Field {
	var missing []Field
	for _, f := range Fields {
		if p.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
