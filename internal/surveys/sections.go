package surveys

import (
	"context"
	"net/url"
	"strconv"

	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/view"
)

var audiences = []string{"All Employees", "Engineering", "EHS", "IT", "Tenants", "Block A", "Block B"}

func idString(id int64) string { return strconv.FormatInt(id, 10) }

func (s *Service) sections(pageSize int) []console.Section {
	return []console.Section{
		console.NewTable(console.TableConfig[Survey]{
			Key:   TabSurveys,
			Label: "Surveys",
			Store: s.surveys,
			Screen: listing.Screen[Survey]{
				Columns: []listing.Column[Survey]{
					{Key: "title", Label: "Title", Value: func(v Survey) any { return v.Title }},
					{Key: "audience", Label: "Audience", Value: func(v Survey) any { return v.Audience }},
					{Key: "status", Label: "Status", Value: func(v Survey) any { return v.Status }},
					{Key: "questions", Label: "Questions", Value: func(v Survey) any { return v.Questions }},
					{Key: "created_on", Label: "Created", Value: func(v Survey) any { return v.CreatedOn }},
				},
				PageSize: pageSize,
				RowID:    func(v Survey) string { return idString(v.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "title", Label: "Title", Required: true},
				{Name: "audience", Label: "Audience", Type: view.InputSelect, Options: audiences, Required: true},
				{Name: "questions", Label: "Questions", Type: view.InputNumber},
			},
			Decode: func(v url.Values) Survey {
				return Survey{
					Title:     console.FormString(v, "title"),
					Audience:  console.FormString(v, "audience"),
					Questions: console.FormInt(v, "questions"),
				}
			},
			BeforeCreate: func(_ context.Context, v *Survey) (console.FieldErrors, error) {
				v.Status = StatusDraft
				v.CreatedOn = s.now().Format("2006-01-02")
				return nil, nil
			},
			Actions: []console.RowAction{{Label: "Publish", Path: "publish"}},
			Title:   func(v Survey) string { return v.Title },
		}),
		console.NewTable(console.TableConfig[Template]{
			Key:   TabTemplates,
			Label: "Templates",
			Store: s.templates,
			Screen: listing.Screen[Template]{
				Columns: []listing.Column[Template]{
					{Key: "name", Label: "Name", Value: func(v Template) any { return v.Name }},
					{Key: "category", Label: "Category", Value: func(v Template) any { return v.Category }},
					{Key: "questions", Label: "Questions", Value: func(v Template) any { return v.Questions }},
				},
				PageSize: pageSize,
				RowID:    func(v Template) string { return idString(v.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "name", Label: "Name", Required: true},
				{Name: "category", Label: "Category"},
				{Name: "questions", Label: "Questions", Type: view.InputNumber},
			},
			Decode: func(v url.Values) Template {
				return Template{
					Name:      console.FormString(v, "name"),
					Category:  console.FormString(v, "category"),
					Questions: console.FormInt(v, "questions"),
				}
			},
			Title: func(v Template) string { return v.Name },
		}),
		console.NewTable(console.TableConfig[Communication]{
			Key:   TabCommunications,
			Label: "Communications",
			Store: s.communications,
			Screen: listing.Screen[Communication]{
				Columns: []listing.Column[Communication]{
					{Key: "subject", Label: "Subject", Value: func(v Communication) any { return v.Subject }},
					{Key: "channel", Label: "Channel", Value: func(v Communication) any { return v.Channel }},
					{Key: "audience", Label: "Audience", Value: func(v Communication) any { return v.Audience }},
					{Key: "sent_on", Label: "Sent on", Value: func(v Communication) any { return v.SentOn }},
					{Key: "status", Label: "Status", Value: func(v Communication) any { return v.Status }},
				},
				PageSize: pageSize,
				RowID:    func(v Communication) string { return idString(v.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "subject", Label: "Subject", Required: true},
				{Name: "channel", Label: "Channel", Type: view.InputSelect, Options: []string{"Email", "SMS", "Notice Board"}, Required: true},
				{Name: "audience", Label: "Audience", Type: view.InputSelect, Options: audiences, Required: true},
				{Name: "sent_on", Label: "Send on", Type: view.InputDate},
			},
			Decode: func(v url.Values) Communication {
				return Communication{
					Subject:  console.FormString(v, "subject"),
					Channel:  console.FormString(v, "channel"),
					Audience: console.FormString(v, "audience"),
					SentOn:   console.FormString(v, "sent_on"),
				}
			},
			BeforeCreate: func(_ context.Context, v *Communication) (console.FieldErrors, error) {
				v.Status = "Scheduled"
				return nil, nil
			},
			Title: func(v Communication) string { return v.Subject },
		}),
	}
}
