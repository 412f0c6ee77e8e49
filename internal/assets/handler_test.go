package assets

import (
	"bytes"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/opsdesk/internal/console/consoletest"
)

func newClient(t *testing.T) (*consoletest.Client, *Service) {
	t.Helper()
	service, err := NewService()
	require.NoError(t, err)
	logs := &bytes.Buffer{}
	cfg := consoletest.Config(t, logs)
	cfg.BasePath = "/assets"
	handler, err := NewHandler(cfg, service, 0)
	require.NoError(t, err)
	return consoletest.New(t, "/assets", logs, handler.MountRoutes), service
}

func TestAssetRegisterPagesByTen(t *testing.T) {
	client, _ := newClient(t)

	first := client.List("/assets/api?tab=Assets")
	require.NotNil(t, first.View)
	assert.Len(t, first.View.Rows, 10)
	assert.Equal(t, 2, first.View.Page.TotalPages)
	assert.Equal(t, 12, first.View.Page.Total)

	second := client.List("/assets/api?tab=Assets&page=2")
	assert.Equal(t, []string{"Access Control Panel", "Cooling Tower"}, second.Column(0))
}

func TestAssetFiltersCombine(t *testing.T) {
	client, _ := newClient(t)

	list := client.List("/assets/api?tab=Assets&f.category=hvac&f.location=block")
	assert.Equal(t, []string{"Chiller Unit", "Air Handling Unit"}, list.Column(0))
}

func TestStockReorderColumn(t *testing.T) {
	client, _ := newClient(t)

	list := client.List("/assets/api?tab=Stock+Items&f.reorder=yes")
	assert.Equal(t, []string{"MCB 32A", "Refrigerant R410A"}, list.Column(0))
}

func TestAMCRejectsInvertedDates(t *testing.T) {
	client, service := newClient(t)

	rec := client.PostForm("/assets?tab=AMC", url.Values{
		"asset":      {"Fire Pump"},
		"vendor":     {"AquaFlow"},
		"start_date": {"2025-06-01"},
		"end_date":   {"2025-01-01"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "End date must not be before the start date")
	assert.Len(t, service.amc.List(), 3)
}

func TestAddAssetAppendsToRegister(t *testing.T) {
	client, _ := newClient(t)

	rec := client.PostForm("/assets?tab=Assets", url.Values{
		"name": {"Booster Pump"}, "code": {"AST-013"}, "category": {"Plumbing"},
		"status": {"Active"}, "quantity": {"2"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/assets?tab=Assets", rec.Header().Get("Location"))

	list := client.List("/assets/api?tab=Assets&page=2")
	assert.Equal(t, []string{"Access Control Panel", "Cooling Tower", "Booster Pump"}, list.Column(0))
}

func TestAMCFormOffersRegisteredAssets(t *testing.T) {
	client, _ := newClient(t)

	rec := client.Get("/assets/new?tab=AMC")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="Cooling Tower">Cooling Tower</option>`)
}
