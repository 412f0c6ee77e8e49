package incidents

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/opsdesk/internal/categories"
	"github.com/odyssey-erp/opsdesk/internal/console/consoletest"
	"github.com/odyssey-erp/opsdesk/internal/shared"
)

type duplicateCounter map[string]int

func (d duplicateCounter) DuplicateRejected(kind string) { d[kind]++ }

func newClient(t *testing.T, registry categories.Registry) (*consoletest.Client, *Service, duplicateCounter) {
	t.Helper()
	logs := &bytes.Buffer{}
	counter := duplicateCounter{}
	cfg := consoletest.Config(t, logs)
	cfg.BasePath = "/incidents"
	service, err := NewService(context.Background(), registry, cfg.Logger, counter)
	require.NoError(t, err)
	handler, err := NewHandler(cfg, service, 0)
	require.NoError(t, err)
	return consoletest.New(t, "/incidents", logs, handler.MountRoutes), service, counter
}

func TestStatusFilterMatchesCaseInsensitively(t *testing.T) {
	client, _, _ := newClient(t, categories.NewMemoryRegistry())

	list := client.List("/incidents/api?tab=Incident+Status&f.label=on")
	assert.Equal(t, []string{"On Hold"}, list.Column(0))
}

func TestDuplicateCategoryIsRejected(t *testing.T) {
	client, service, counter := newClient(t, categories.NewMemoryRegistry())

	rec := client.PostForm("/incidents?tab=Category", url.Values{"name": {"fire safety"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
	assert.Equal(t, 1, counter["category"])

	names, err := service.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fire Safety", "Housekeeping", "Plumbing", "Security Breach"}, names)

	rec = client.PostForm("/incidents?tab=Category", url.Values{"name": {"Electrical"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	list := client.List("/incidents/api?tab=Category")
	assert.Equal(t, []string{"Fire Safety", "Housekeeping", "Plumbing", "Security Breach", "Electrical"}, list.Column(0))
}

func TestBlankCategoryShowsFieldError(t *testing.T) {
	client, _, _ := newClient(t, categories.NewMemoryRegistry())

	rec := client.PostForm("/incidents?tab=Category", url.Values{"name": {"   "}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category is required")
}

func TestCategoriesCannotBeDeleted(t *testing.T) {
	client, service, _ := newClient(t, categories.NewMemoryRegistry())

	rec := client.PostForm("/incidents/1/delete?tab=Category", url.Values{shared.ConfirmField: {"yes"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	names, err := service.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 4)
}

func TestSubCategoryParentMustExist(t *testing.T) {
	client, service, _ := newClient(t, categories.NewMemoryRegistry())

	rec := client.PostForm("/incidents?tab=Sub+Category", url.Values{"category": {"Electrical"}, "name": {"Short circuit"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category must be an existing category")
	assert.Equal(t, 4, service.subCategories.Len())

	rec = client.PostForm("/incidents?tab=Sub+Category", url.Values{"category": {"plumbing"}, "name": {"Blocked drain"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 5, service.subCategories.Len())
}

func TestSubCategoryFormListsRegistry(t *testing.T) {
	client, service, _ := newClient(t, categories.NewMemoryRegistry())
	require.NoError(t, service.AddCategory(context.Background(), "Lift Entrapment"))

	rec := client.Get("/incidents/new?tab=Sub+Category")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="Lift Entrapment">Lift Entrapment</option>`)
}

func TestPriorityRejectsResolutionBeforeResponse(t *testing.T) {
	client, _, _ := newClient(t, categories.NewMemoryRegistry())

	rec := client.PostForm("/incidents?tab=Priority", url.Values{"name": {"Urgent"}, "response_hours": {"8"}, "resolution_hours": {"2"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Resolution hours must not be less than response hours")
}

func TestRedisRegistrySharesCategoriesAcrossServices(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	_, first, _ := newClient(t, categories.NewRedisRegistry(rdb, "test:categories"))
	require.NoError(t, first.AddCategory(context.Background(), "Electrical"))

	client, _, counter := newClient(t, categories.NewRedisRegistry(rdb, "test:categories"))
	rec := client.PostForm("/incidents?tab=Category", url.Values{"name": {"ELECTRICAL"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, counter["category"])

	list := client.List("/incidents/api?tab=Category")
	assert.Equal(t, []string{"Fire Safety", "Housekeeping", "Plumbing", "Security Breach", "Electrical"}, list.Column(0))
}

func TestAddCategoryWrapsDuplicate(t *testing.T) {
	_, service, _ := newClient(t, categories.NewMemoryRegistry())

	err := service.AddCategory(context.Background(), "Housekeeping")
	require.ErrorIs(t, err, shared.ErrDuplicate)
	assert.Equal(t, `Category "Housekeeping" already exists`, shared.UserSafeMessage(err))
}
