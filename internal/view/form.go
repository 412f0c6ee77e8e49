package view

// Input types understood by the form template.
const (
	InputText     = "text"
	InputNumber   = "number"
	InputDate     = "date"
	InputEmail    = "email"
	InputSelect   = "select"
	InputCheckbox = "checkbox"
	InputTextarea = "textarea"
)

// FormField is one rendered input of a create form.
type FormField struct {
	Name     string
	Label    string
	Type     string
	Options  []string
	Value    string
	Required bool
	Error    string
}

// Checked reports whether a checkbox field is on.
func (f FormField) Checked() bool {
	return f.Value == "on" || f.Value == "true"
}
