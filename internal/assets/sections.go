package assets

import (
	"context"
	"net/url"
	"strconv"

	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/view"
)

var (
	assetStatuses = []string{"Active", "Inactive", "Under Maintenance"}
	frequencies   = []string{"Daily", "Weekly", "Monthly", "Quarterly", "Half Yearly", "Yearly"}
)

func idString(id int64) string { return strconv.FormatInt(id, 10) }

func (s *Service) assetOptions(context.Context) ([]string, error) {
	return s.AssetNames(), nil
}

func (s *Service) sections(pageSize int) []console.Section {
	return []console.Section{
		console.NewTable(console.TableConfig[Asset]{
			Key:   TabAssets,
			Label: "Assets",
			Store: s.assets,
			Screen: listing.Screen[Asset]{
				Columns: []listing.Column[Asset]{
					{Key: "name", Label: "Name", Value: func(a Asset) any { return a.Name }},
					{Key: "code", Label: "Code", Value: func(a Asset) any { return a.Code }},
					{Key: "category", Label: "Category", Value: func(a Asset) any { return a.Category }},
					{Key: "location", Label: "Location", Value: func(a Asset) any { return a.Location }},
					{Key: "status", Label: "Status", Value: func(a Asset) any { return a.Status }},
					{Key: "quantity", Label: "Qty", Value: func(a Asset) any { return a.Quantity }},
					{Key: "purchased_on", Label: "Purchased", Value: func(a Asset) any { return a.PurchasedOn }},
				},
				PageSize: pageSize,
				RowID:    func(a Asset) string { return idString(a.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "name", Label: "Name", Required: true},
				{Name: "code", Label: "Code", Required: true},
				{Name: "category", Label: "Category", Required: true},
				{Name: "location", Label: "Location"},
				{Name: "status", Label: "Status", Type: view.InputSelect, Options: assetStatuses, Required: true},
				{Name: "quantity", Label: "Quantity", Type: view.InputNumber},
				{Name: "purchased_on", Label: "Purchased on", Type: view.InputDate},
			},
			Decode: func(v url.Values) Asset {
				return Asset{
					Name:        console.FormString(v, "name"),
					Code:        console.FormString(v, "code"),
					Category:    console.FormString(v, "category"),
					Location:    console.FormString(v, "location"),
					Status:      console.FormString(v, "status"),
					Quantity:    console.FormInt(v, "quantity"),
					PurchasedOn: console.FormString(v, "purchased_on"),
				}
			},
			Title: func(a Asset) string { return a.Name },
		}),
		console.NewTable(console.TableConfig[AMC]{
			Key:   TabAMC,
			Label: "AMC",
			Store: s.amc,
			Screen: listing.Screen[AMC]{
				Columns: []listing.Column[AMC]{
					{Key: "asset", Label: "Asset", Value: func(a AMC) any { return a.Asset }},
					{Key: "vendor", Label: "Vendor", Value: func(a AMC) any { return a.Vendor }},
					{Key: "start_date", Label: "Start", Value: func(a AMC) any { return a.StartDate }},
					{Key: "end_date", Label: "End", Value: func(a AMC) any { return a.EndDate }},
					{Key: "amount", Label: "Amount", Value: func(a AMC) any { return a.Amount }},
				},
				PageSize: pageSize,
				RowID:    func(a AMC) string { return idString(a.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "asset", Label: "Asset", Type: view.InputSelect, OptionsFunc: s.assetOptions, Required: true},
				{Name: "vendor", Label: "Vendor", Required: true},
				{Name: "start_date", Label: "Start date", Type: view.InputDate, Required: true},
				{Name: "end_date", Label: "End date", Type: view.InputDate, Required: true},
				{Name: "amount", Label: "Amount", Type: view.InputNumber},
			},
			Decode: func(v url.Values) AMC {
				return AMC{
					Asset:     console.FormString(v, "asset"),
					Vendor:    console.FormString(v, "vendor"),
					StartDate: console.FormString(v, "start_date"),
					EndDate:   console.FormString(v, "end_date"),
					Amount:    console.FormFloat(v, "amount"),
				}
			},
			BeforeCreate: func(_ context.Context, a *AMC) (console.FieldErrors, error) {
				if a.EndDate < a.StartDate {
					return console.FieldErrors{"end_date": "End date must not be before the start date"}, nil
				}
				return nil, nil
			},
			Title: func(a AMC) string { return a.Asset + " / " + a.Vendor },
		}),
		console.NewTable(console.TableConfig[Checklist]{
			Key:   TabChecklist,
			Label: "Checklist",
			Store: s.checklists,
			Screen: listing.Screen[Checklist]{
				Columns: []listing.Column[Checklist]{
					{Key: "name", Label: "Name", Value: func(c Checklist) any { return c.Name }},
					{Key: "frequency", Label: "Frequency", Value: func(c Checklist) any { return c.Frequency }},
					{Key: "items", Label: "Items", Value: func(c Checklist) any { return c.Items }},
					{Key: "assignee", Label: "Assignee", Value: func(c Checklist) any { return c.Assignee }},
				},
				PageSize: pageSize,
				RowID:    func(c Checklist) string { return idString(c.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "name", Label: "Name", Required: true},
				{Name: "frequency", Label: "Frequency", Type: view.InputSelect, Options: frequencies, Required: true},
				{Name: "items", Label: "Items", Type: view.InputNumber},
				{Name: "assignee", Label: "Assignee"},
			},
			Decode: func(v url.Values) Checklist {
				return Checklist{
					Name:      console.FormString(v, "name"),
					Frequency: console.FormString(v, "frequency"),
					Items:     console.FormInt(v, "items"),
					Assignee:  console.FormString(v, "assignee"),
				}
			},
			Title: func(c Checklist) string { return c.Name },
		}),
		console.NewTable(console.TableConfig[PPMSchedule]{
			Key:   TabPPM,
			Label: "PPM",
			Store: s.ppm,
			Screen: listing.Screen[PPMSchedule]{
				Columns: []listing.Column[PPMSchedule]{
					{Key: "asset", Label: "Asset", Value: func(p PPMSchedule) any { return p.Asset }},
					{Key: "task", Label: "Task", Value: func(p PPMSchedule) any { return p.Task }},
					{Key: "frequency", Label: "Frequency", Value: func(p PPMSchedule) any { return p.Frequency }},
					{Key: "next_due", Label: "Next due", Value: func(p PPMSchedule) any { return p.NextDue }},
					{Key: "assignee", Label: "Assignee", Value: func(p PPMSchedule) any { return p.Assignee }},
				},
				PageSize: pageSize,
				RowID:    func(p PPMSchedule) string { return idString(p.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "asset", Label: "Asset", Type: view.InputSelect, OptionsFunc: s.assetOptions, Required: true},
				{Name: "task", Label: "Task", Required: true},
				{Name: "frequency", Label: "Frequency", Type: view.InputSelect, Options: frequencies, Required: true},
				{Name: "next_due", Label: "Next due", Type: view.InputDate, Required: true},
				{Name: "assignee", Label: "Assignee"},
			},
			Decode: func(v url.Values) PPMSchedule {
				return PPMSchedule{
					Asset:     console.FormString(v, "asset"),
					Task:      console.FormString(v, "task"),
					Frequency: console.FormString(v, "frequency"),
					NextDue:   console.FormString(v, "next_due"),
					Assignee:  console.FormString(v, "assignee"),
				}
			},
			Title: func(p PPMSchedule) string { return p.Task },
		}),
		console.NewTable(console.TableConfig[StockItem]{
			Key:   TabStockItems,
			Label: "Stock Items",
			Store: s.stock,
			Screen: listing.Screen[StockItem]{
				Columns: []listing.Column[StockItem]{
					{Key: "name", Label: "Name", Value: func(i StockItem) any { return i.Name }},
					{Key: "sku", Label: "SKU", Value: func(i StockItem) any { return i.SKU }},
					{Key: "quantity", Label: "Qty", Value: func(i StockItem) any { return i.Quantity }},
					{Key: "unit", Label: "Unit", Value: func(i StockItem) any { return i.Unit }},
					{Key: "reorder_level", Label: "Reorder level", Value: func(i StockItem) any { return i.ReorderLevel }},
					{Key: "reorder", Label: "Reorder", Value: func(i StockItem) any {
						if i.NeedsReorder() {
							return "Yes"
						}
						return "No"
					}},
				},
				PageSize: pageSize,
				RowID:    func(i StockItem) string { return idString(i.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "name", Label: "Name", Required: true},
				{Name: "sku", Label: "SKU", Required: true},
				{Name: "quantity", Label: "Quantity", Type: view.InputNumber},
				{Name: "unit", Label: "Unit", Type: view.InputSelect, Options: []string{"pcs", "m", "kg", "l", "box"}, Required: true},
				{Name: "reorder_level", Label: "Reorder level", Type: view.InputNumber},
			},
			Decode: func(v url.Values) StockItem {
				return StockItem{
					Name:         console.FormString(v, "name"),
					SKU:          console.FormString(v, "sku"),
					Quantity:     console.FormInt(v, "quantity"),
					Unit:         console.FormString(v, "unit"),
					ReorderLevel: console.FormInt(v, "reorder_level"),
				}
			},
			Title: func(i StockItem) string { return i.Name },
		}),
	}
}
