// Package incidents implements the incident setup screen: categories,
// sub-categories, statuses, priorities and CAPA records.
package incidents

// Tab keys of the incident setup screen.
const (
	TabCategory    = "Category"
	TabSubCategory = "Sub Category"
	TabStatus      = "Incident Status"
	TabPriority    = "Priority"
	TabCAPA        = "CAPA"
)

// SubCategory narrows a registry category.
type SubCategory struct {
	ID       int64  `yaml:"-" json:"id"`
	Category string `yaml:"category" json:"category" form:"category" validate:"required"`
	Name     string `yaml:"name" json:"name" form:"name" validate:"required"`
}

// Status is a workflow state an incident can be in.
type Status struct {
	ID    int64  `yaml:"-" json:"id"`
	Label string `yaml:"label" json:"label" form:"label" validate:"required"`
	Color string `yaml:"color" json:"color" form:"color"`
}

// Priority sets the response and resolution targets of an incident.
type Priority struct {
	ID              int64  `yaml:"-" json:"id"`
	Name            string `yaml:"name" json:"name" form:"name" validate:"required"`
	ResponseHours   int    `yaml:"response_hours" json:"response_hours" form:"response_hours" validate:"gte=0"`
	ResolutionHours int    `yaml:"resolution_hours" json:"resolution_hours" form:"resolution_hours" validate:"gte=0"`
}

// CAPA is a corrective and preventive action raised for an incident.
type CAPA struct {
	ID         int64  `yaml:"-" json:"id"`
	Incident   string `yaml:"incident" json:"incident" form:"incident" validate:"required"`
	Corrective string `yaml:"corrective" json:"corrective" form:"corrective" validate:"required"`
	Preventive string `yaml:"preventive" json:"preventive" form:"preventive"`
	Owner      string `yaml:"owner" json:"owner" form:"owner" validate:"required"`
	DueDate    string `yaml:"due_date" json:"due_date" form:"due_date"`
	Status     string `yaml:"status" json:"status" form:"status"`
}

type fixture struct {
	Categories    []string      `yaml:"categories"`
	SubCategories []SubCategory `yaml:"sub_categories"`
	Statuses      []Status      `yaml:"statuses"`
	Priorities    []Priority    `yaml:"priorities"`
	CAPA          []CAPA        `yaml:"capa"`
}
