// Package assets implements the asset management screen: the asset register,
// AMC contracts, inspection checklists, PPM schedules and stock items.
package assets

// Tab keys of the asset screen.
const (
	TabAssets     = "Assets"
	TabAMC        = "AMC"
	TabChecklist  = "Checklist"
	TabPPM        = "PPM"
	TabStockItems = "Stock Items"
)

// Asset is one entry of the asset register.
type Asset struct {
	ID          int64  `yaml:"-" json:"id"`
	Name        string `yaml:"name" json:"name" form:"name" validate:"required"`
	Code        string `yaml:"code" json:"code" form:"code" validate:"required"`
	Category    string `yaml:"category" json:"category" form:"category" validate:"required"`
	Location    string `yaml:"location" json:"location" form:"location"`
	Status      string `yaml:"status" json:"status" form:"status" validate:"required"`
	Quantity    int    `yaml:"quantity" json:"quantity" form:"quantity" validate:"gte=0"`
	PurchasedOn string `yaml:"purchased_on" json:"purchased_on" form:"purchased_on"`
}

// AMC is an annual maintenance contract for an asset.
type AMC struct {
	ID        int64   `yaml:"-" json:"id"`
	Asset     string  `yaml:"asset" json:"asset" form:"asset" validate:"required"`
	Vendor    string  `yaml:"vendor" json:"vendor" form:"vendor" validate:"required"`
	StartDate string  `yaml:"start_date" json:"start_date" form:"start_date" validate:"required"`
	EndDate   string  `yaml:"end_date" json:"end_date" form:"end_date" validate:"required"`
	Amount    float64 `yaml:"amount" json:"amount" form:"amount" validate:"gte=0"`
}

// Checklist is a recurring inspection routine.
type Checklist struct {
	ID        int64  `yaml:"-" json:"id"`
	Name      string `yaml:"name" json:"name" form:"name" validate:"required"`
	Frequency string `yaml:"frequency" json:"frequency" form:"frequency" validate:"required"`
	Items     int    `yaml:"items" json:"items" form:"items" validate:"gte=0"`
	Assignee  string `yaml:"assignee" json:"assignee" form:"assignee"`
}

// PPMSchedule is a planned preventive maintenance task.
type PPMSchedule struct {
	ID        int64  `yaml:"-" json:"id"`
	Asset     string `yaml:"asset" json:"asset" form:"asset" validate:"required"`
	Task      string `yaml:"task" json:"task" form:"task" validate:"required"`
	Frequency string `yaml:"frequency" json:"frequency" form:"frequency" validate:"required"`
	NextDue   string `yaml:"next_due" json:"next_due" form:"next_due" validate:"required"`
	Assignee  string `yaml:"assignee" json:"assignee" form:"assignee"`
}

// StockItem is a consumable kept in the store room.
type StockItem struct {
	ID           int64  `yaml:"-" json:"id"`
	Name         string `yaml:"name" json:"name" form:"name" validate:"required"`
	SKU          string `yaml:"sku" json:"sku" form:"sku" validate:"required"`
	Quantity     int    `yaml:"quantity" json:"quantity" form:"quantity" validate:"gte=0"`
	Unit         string `yaml:"unit" json:"unit" form:"unit" validate:"required"`
	ReorderLevel int    `yaml:"reorder_level" json:"reorder_level" form:"reorder_level" validate:"gte=0"`
}

// NeedsReorder reports whether stock has fallen to the reorder level.
func (s StockItem) NeedsReorder() bool {
	return s.Quantity <= s.ReorderLevel
}

type fixture struct {
	Assets     []Asset       `yaml:"assets"`
	AMC        []AMC         `yaml:"amc"`
	Checklists []Checklist   `yaml:"checklists"`
	PPM        []PPMSchedule `yaml:"ppm"`
	StockItems []StockItem   `yaml:"stock_items"`
}
