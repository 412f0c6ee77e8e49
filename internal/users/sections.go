package users

import (
	"context"
	"net/url"
	"strconv"

	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/view"
)

func idString(id int64) string { return strconv.FormatInt(id, 10) }

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func (s *Service) sections(pageSize int) []console.Section {
	return []console.Section{
		console.NewTable(console.TableConfig[User]{
			Key:   TabUsers,
			Label: "Users",
			Store: s.users,
			Screen: listing.Screen[User]{
				Columns: []listing.Column[User]{
					{Key: "name", Label: "Name", Value: func(u User) any { return u.Name }},
					{Key: "email", Label: "Email", Value: func(u User) any { return u.Email }},
					{Key: "role", Label: "Role", Value: func(u User) any { return u.Role }},
					{Key: "department", Label: "Department", Value: func(u User) any { return u.Department }},
					{Key: "status", Label: "Status", Value: func(u User) any { return activeLabel(u.Active) }},
				},
				PageSize: pageSize,
				RowID:    func(u User) string { return idString(u.ID) },
			},
			Form: []console.FieldSpec{
				{Name: "name", Label: "Name", Required: true},
				{Name: "email", Label: "Email", Type: view.InputEmail, Required: true},
				{Name: "role", Label: "Role", Type: view.InputSelect, OptionsFunc: s.roleNames, Required: true},
				{Name: "department", Label: "Department"},
				{Name: "active", Label: "Active", Type: view.InputCheckbox},
			},
			Decode: func(v url.Values) User {
				return User{
					Name:       console.FormString(v, "name"),
					Email:      console.FormString(v, "email"),
					Role:       console.FormString(v, "role"),
					Department: console.FormString(v, "department"),
					Active:     console.FormBool(v, "active"),
				}
			},
			BeforeCreate: func(ctx context.Context, u *User) (console.FieldErrors, error) {
				for _, existing := range s.users.List() {
					if equalFold(existing.Email, u.Email) {
						return console.FieldErrors{"email": "Email is already registered"}, nil
					}
				}
				return nil, nil
			},
			Actions: []console.RowAction{{Label: "Toggle active", Path: "toggle"}},
			Title:   func(u User) string { return u.Name },
		}),
		&roleSection{
			Table: console.NewTable(console.TableConfig[Role]{
				Key:   TabRoles,
				Label: "Roles",
				Store: s.roles,
				Screen: listing.Screen[Role]{
					Columns: []listing.Column[Role]{
						{Key: "name", Label: "Role", Value: func(r Role) any { return r.Name }},
						{Key: "description", Label: "Description", Value: func(r Role) any { return r.Description }},
						{Key: "members", Label: "Members", Value: func(r Role) any { return r.Members }},
					},
					PageSize: pageSize,
					RowID:    func(r Role) string { return idString(r.ID) },
				},
				Form: []console.FieldSpec{
					{Name: "name", Label: "Role", Required: true},
					{Name: "description", Label: "Description", Type: view.InputTextarea},
				},
				Decode: func(v url.Values) Role {
					return Role{Name: console.FormString(v, "name"), Description: console.FormString(v, "description")}
				},
				BeforeCreate: func(_ context.Context, r *Role) (console.FieldErrors, error) {
					for _, existing := range s.roles.List() {
						if equalFold(existing.Name, r.Name) {
							return console.FieldErrors{"name": "Role already exists"}, nil
						}
					}
					return nil, nil
				},
				Title: func(r Role) string { return r.Name },
			}),
			service: s,
		},
	}
}

// roleSection recounts role members before every listing.
type roleSection struct {
	*console.Table[Role]
	service *Service
}

func (r *roleSection) View(ctx context.Context, q listing.Query) (listing.View, error) {
	r.service.refreshMembers()
	return r.Table.View(ctx, q)
}
