package assets

import (
	"fmt"

	"github.com/odyssey-erp/opsdesk/internal/platform/memstore"
	"github.com/odyssey-erp/opsdesk/internal/seed"
)

// Service owns the in-memory record stores of the asset screen.
type Service struct {
	assets     *memstore.Store[Asset]
	amc        *memstore.Store[AMC]
	checklists *memstore.Store[Checklist]
	ppm        *memstore.Store[PPMSchedule]
	stock      *memstore.Store[StockItem]
}

// NewService builds a Service seeded from the embedded fixtures.
func NewService() (*Service, error) {
	var data fixture
	if err := seed.Load("assets.yaml", &data); err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	s := &Service{
		assets:     memstore.New(func(a Asset) int64 { return a.ID }, func(a *Asset, id int64) { a.ID = id }),
		amc:        memstore.New(func(a AMC) int64 { return a.ID }, func(a *AMC, id int64) { a.ID = id }),
		checklists: memstore.New(func(c Checklist) int64 { return c.ID }, func(c *Checklist, id int64) { c.ID = id }),
		ppm:        memstore.New(func(p PPMSchedule) int64 { return p.ID }, func(p *PPMSchedule, id int64) { p.ID = id }),
		stock:      memstore.New(func(s StockItem) int64 { return s.ID }, func(s *StockItem, id int64) { s.ID = id }),
	}
	s.assets.Seed(data.Assets...)
	s.amc.Seed(data.AMC...)
	s.checklists.Seed(data.Checklists...)
	s.ppm.Seed(data.PPM...)
	s.stock.Seed(data.StockItems...)
	return s, nil
}

// AssetNames lists registered asset names for the AMC and PPM forms.
func (s *Service) AssetNames() []string {
	rows := s.assets.List()
	names := make([]string, len(rows))
	for i, a := range rows {
		names[i] = a.Name
	}
	return names
}
