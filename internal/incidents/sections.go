package incidents

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/odyssey-erp/opsdesk/internal/categories"
	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/view"
)

func idString(id int64) string { return strconv.FormatInt(id, 10) }

// categorySection lists and adds registry categories. Categories are shared
// with other screens and are never deleted.
type categorySection struct {
	service *Service
	screen  listing.Screen[string]
}

func newCategorySection(service *Service, pageSize int) *categorySection {
	return &categorySection{
		service: service,
		screen: listing.Screen[string]{
			Columns:  []listing.Column[string]{{Key: "name", Label: "Category", Value: func(n string) any { return n }}},
			PageSize: pageSize,
		},
	}
}

func (c *categorySection) Key() string                  { return TabCategory }
func (c *categorySection) Label() string                { return "Category" }
func (c *categorySection) ColumnKeys() []string         { return c.screen.ColumnKeys() }
func (c *categorySection) Deletable() bool              { return false }
func (c *categorySection) Actions() []console.RowAction { return nil }

func (c *categorySection) View(ctx context.Context, q listing.Query) (listing.View, error) {
	names, err := c.service.Categories(ctx)
	if err != nil {
		return listing.View{}, err
	}
	return c.screen.Build(names, q), nil
}

func (c *categorySection) Fields(_ context.Context, values url.Values, errs console.FieldErrors) ([]view.FormField, error) {
	return []view.FormField{{
		Name:     "name",
		Label:    "Category",
		Type:     view.InputText,
		Value:    values.Get("name"),
		Required: true,
		Error:    errs["name"],
	}}, nil
}

func (c *categorySection) Create(ctx context.Context, values url.Values) (console.FieldErrors, error) {
	err := c.service.AddCategory(ctx, values.Get("name"))
	if errors.Is(err, categories.ErrNameRequired) {
		return console.FieldErrors{"name": "Category is required"}, nil
	}
	return nil, err
}

func (c *categorySection) Describe(context.Context, int64) (string, error) {
	return "", console.ErrReadOnly
}

func (c *categorySection) Delete(context.Context, int64) error {
	return console.ErrReadOnly
}

func (s *Service) categoryOptions(ctx context.Context) ([]string, error) {
	return s.Categories(ctx)
}

func (s *Service) sections(pageSize int) []console.Section {
	return []console.Section{
		newCategorySection(s, pageSize),
		console.NewTable(console.TableConfig[SubCategory]{
			Key:   TabSubCategory,
			Label: "Sub Category",
			Store: s.subCategories,
			Screen: listing.Screen[SubCategory]{
				Columns: []listing.Column[SubCategory]{
					{Key: "category", Label: "Category", Value: func(c SubCategory) any { return c.Category }},
					{Key: "name", Label: "Sub Category", Value: func(c SubCategory) any { return c.Name }},
				},
				PageSize: pageSize,
				RowID:    func(c SubCategory) string { return idString(c.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "category", Label: "Category", Type: view.InputSelect, OptionsFunc: s.categoryOptions, Required: true},
				{Name: "name", Label: "Sub Category", Required: true},
			},
			Decode: func(v url.Values) SubCategory {
				return SubCategory{Category: console.FormString(v, "category"), Name: console.FormString(v, "name")}
			},
			BeforeCreate: func(ctx context.Context, c *SubCategory) (console.FieldErrors, error) {
				ok, err := s.checkParent(ctx, c.Category)
				if err != nil {
					return nil, err
				}
				if !ok {
					return console.FieldErrors{"category": "Category must be an existing category"}, nil
				}
				return nil, nil
			},
			Title: func(c SubCategory) string { return c.Name },
		}),
		console.NewTable(console.TableConfig[Status]{
			Key:   TabStatus,
			Label: "Incident Status",
			Store: s.statuses,
			Screen: listing.Screen[Status]{
				Columns: []listing.Column[Status]{
					{Key: "label", Label: "Status", Value: func(st Status) any { return st.Label }},
					{Key: "color", Label: "Colour", Value: func(st Status) any { return st.Color }},
				},
				PageSize: pageSize,
				RowID:    func(st Status) string { return idString(st.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "label", Label: "Status", Required: true},
				{Name: "color", Label: "Colour", Type: view.InputSelect, Options: []string{"amber", "green", "grey", "red", "blue"}},
			},
			Decode: func(v url.Values) Status {
				return Status{Label: console.FormString(v, "label"), Color: console.FormString(v, "color")}
			},
			Title: func(st Status) string { return st.Label },
		}),
		console.NewTable(console.TableConfig[Priority]{
			Key:   TabPriority,
			Label: "Priority",
			Store: s.priorities,
			Screen: listing.Screen[Priority]{
				Columns: []listing.Column[Priority]{
					{Key: "name", Label: "Priority", Value: func(p Priority) any { return p.Name }},
					{Key: "response_hours", Label: "Response (h)", Value: func(p Priority) any { return p.ResponseHours }},
					{Key: "resolution_hours", Label: "Resolution (h)", Value: func(p Priority) any { return p.ResolutionHours }},
				},
				PageSize: pageSize,
				RowID:    func(p Priority) string { return idString(p.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "name", Label: "Priority", Required: true},
				{Name: "response_hours", Label: "Response hours", Type: view.InputNumber},
				{Name: "resolution_hours", Label: "Resolution hours", Type: view.InputNumber},
			},
			Decode: func(v url.Values) Priority {
				return Priority{
					Name:            console.FormString(v, "name"),
					ResponseHours:   console.FormInt(v, "response_hours"),
					ResolutionHours: console.FormInt(v, "resolution_hours"),
				}
			},
			BeforeCreate: func(_ context.Context, p *Priority) (console.FieldErrors, error) {
				if p.ResolutionHours > 0 && p.ResolutionHours < p.ResponseHours {
					return console.FieldErrors{"resolution_hours": "Resolution hours must not be less than response hours"}, nil
				}
				return nil, nil
			},
			Title: func(p Priority) string { return p.Name },
		}),
		console.NewTable(console.TableConfig[CAPA]{
			Key:   TabCAPA,
			Label: "CAPA",
			Store: s.capa,
			Screen: listing.Screen[CAPA]{
				Columns: []listing.Column[CAPA]{
					{Key: "incident", Label: "Incident", Value: func(c CAPA) any { return c.Incident }},
					{Key: "corrective", Label: "Corrective action", Value: func(c CAPA) any { return c.Corrective }},
					{Key: "preventive", Label: "Preventive action", Value: func(c CAPA) any { return c.Preventive }},
					{Key: "owner", Label: "Owner", Value: func(c CAPA) any { return c.Owner }},
					{Key: "due_date", Label: "Due", Value: func(c CAPA) any { return c.DueDate }},
					{Key: "status", Label: "Status", Value: func(c CAPA) any { return c.Status }},
				},
				PageSize: pageSize,
				RowID:    func(c CAPA) string { return idString(c.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "incident", Label: "Incident", Required: true},
				{Name: "corrective", Label: "Corrective action", Type: view.InputTextarea, Required: true},
				{Name: "preventive", Label: "Preventive action", Type: view.InputTextarea},
				{Name: "owner", Label: "Owner", Required: true},
				{Name: "due_date", Label: "Due date", Type: view.InputDate},
				{Name: "status", Label: "Status", Type: view.InputSelect, Options: []string{"Open", "Closed"}},
			},
			Decode: func(v url.Values) CAPA {
				return CAPA{
					Incident:   console.FormString(v, "incident"),
					Corrective: console.FormString(v, "corrective"),
					Preventive: console.FormString(v, "preventive"),
					Owner:      console.FormString(v, "owner"),
					DueDate:    console.FormString(v, "due_date"),
					Status:     console.FormString(v, "status"),
				}
			},
			BeforeCreate: func(_ context.Context, c *CAPA) (console.FieldErrors, error) {
				if c.Status == "" {
					c.Status = "Open"
				}
				return nil, nil
			},
			Title: func(c CAPA) string { return c.Incident },
		}),
	}
}
