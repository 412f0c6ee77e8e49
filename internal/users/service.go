package users

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"

	"github.com/odyssey-erp/opsdesk/internal/platform/memstore"
	"github.com/odyssey-erp/opsdesk/internal/seed"
	"github.com/odyssey-erp/opsdesk/internal/shared"
)

// Service handles user administration.
type Service struct {
	users *memstore.Store[User]
	roles *memstore.Store[Role]
}

// NewService builds a Service seeded from the embedded fixtures.
func NewService() (*Service, error) {
	var data fixture
	if err := seed.Load("users.yaml", &data); err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	s := &Service{
		users: memstore.New(func(u User) int64 { return u.ID }, func(u *User, id int64) { u.ID = id }),
		roles: memstore.New(func(r Role) int64 { return r.ID }, func(r *Role, id int64) { r.ID = id }),
	}
	s.users.Seed(data.Users...)
	s.roles.Seed(data.Roles...)
	return s, nil
}

// ToggleActive flips the active flag of a user.
func (s *Service) ToggleActive(_ context.Context, id int64) (User, error) {
	u, err := s.users.Update(id, func(u *User) { u.Active = !u.Active })
	if err != nil {
		return User{}, fmt.Errorf("user %d: %w", id, shared.ErrNotFound)
	}
	return u, nil
}

// CountAudience counts active users addressed by audience: everyone for
// AllEmployees, otherwise the users whose department or role matches it
// regardless of case.
func (s *Service) CountAudience(_ context.Context, audience string) (int, error) {
	fold := cases.Fold()
	want := fold.String(audience)
	all := want == fold.String(AllEmployees)
	count := 0
	for _, u := range s.users.List() {
		if !u.Active {
			continue
		}
		if all || fold.String(u.Department) == want || fold.String(u.Role) == want {
			count++
		}
	}
	return count, nil
}

func (s *Service) roleNames(context.Context) ([]string, error) {
	rows := s.roles.List()
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	return names, nil
}

// refreshMembers recomputes role member counts from the user list.
func (s *Service) refreshMembers() {
	counts := make(map[string]int)
	for _, u := range s.users.List() {
		counts[u.Role]++
	}
	for _, r := range s.roles.List() {
		n := counts[r.Name]
		_, _ = s.roles.Update(r.ID, func(r *Role) { r.Members = n })
	}
}

func equalFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
