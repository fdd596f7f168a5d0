package console

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogops/console/internal/api"
	"github.com/catalogops/console/internal/config"
	"github.com/catalogops/console/internal/mockapi"
	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/internal/querycache"
	"github.com/catalogops/console/internal/toast"
	"github.com/catalogops/console/pkg/ptr"
	"github.com/catalogops/console/pkg/validator"
)

type fixture struct {
	page   *ProductListPage
	client *api.Client
	store  *mockapi.Store
	cache  *querycache.Cache
	toasts *toast.Channel

	// failing short-circuits the backend with a 500 while set.
	failing atomic.Bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	f := &fixture{
		store:  mockapi.NewStore(),
		toasts: toast.NewChannel(),
	}

	svc, err := mockapi.New(config.HTTP{}, logger, f.store)
	require.NoError(t, err)
	router := svc.Router()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.failing.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	f.client = api.New(config.API{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}, logger)

	// No internal retries so failures surface on the first attempt.
	f.cache = querycache.New(logger, querycache.WithRetryPolicy(querycache.RetryPolicy{
		MaxRetries:   0,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
	}))

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	f.page = NewProductListPage(f.cache, f.client, f.toasts, v, logger)
	t.Cleanup(f.page.Close)

	return f
}

func (f *fixture) seed(t *testing.T, code, name string) model.Product {
	t.Helper()
	product, err := f.store.CreateProduct(model.ProductRequest{
		ProductCode: code,
		ProductName: name,
	})
	require.NoError(t, err)
	return product
}

func TestListPageLoadSuccess(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P-001", "Widget")
	f.seed(t, "P-002", "Gadget")

	f.page.Load(context.Background())

	assert.Equal(t, StateSuccess, f.page.State())
	data := f.page.Data()
	require.Len(t, data.Content, 2)
	assert.Equal(t, int64(2), data.TotalElements)

	_, kind := f.page.Empty()
	assert.Equal(t, EmptyNone, kind)
}

func TestListPageEmptyNoData(t *testing.T) {
	f := newFixture(t)

	f.page.Load(context.Background())

	require.Equal(t, StateSuccess, f.page.State())
	state, kind := f.page.Empty()
	assert.Equal(t, EmptyNoData, kind)
	assert.Equal(t, "No products yet", state.Title)
	assert.False(t, state.Retry)
}

func TestListPageEmptyNoMatch(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P-001", "Widget")

	ctx := context.Background()

	f.page.SetSearch(ctx, model.ProductSearchCondition{ProductName: "zzz"})
	state, kind := f.page.Empty()
	assert.Equal(t, EmptyNoMatch, kind)
	assert.Equal(t, "No results", state.Title)

	// A price window nothing falls into is still a no-match, not no-data.
	f.page.SetSearch(ctx, model.ProductSearchCondition{
		MinPrice: ptr.New(100.0),
		MaxPrice: ptr.New(200.0),
	})
	_, kind = f.page.Empty()
	assert.Equal(t, EmptyNoMatch, kind)

	f.page.ClearSearch(ctx)
	_, kind = f.page.Empty()
	assert.Equal(t, EmptyNone, kind)
}

func TestSearchResetsPageButPagingKeepsSearch(t *testing.T) {
	f := newFixture(t)
	for _, code := range []string{"A-1", "A-2", "A-3", "B-1", "B-2"} {
		f.seed(t, code, "Item "+code)
	}

	ctx := context.Background()
	f.page.Load(ctx)
	f.page.SetPage(ctx, 1)
	assert.Equal(t, 1, f.page.Pagination().Page)

	cond := model.ProductSearchCondition{ProductCode: "A-"}
	f.page.SetSearch(ctx, cond)
	assert.Equal(t, 0, f.page.Pagination().Page, "search change returns to the first page")
	assert.Equal(t, int64(3), f.page.Data().TotalElements)

	f.page.SetPage(ctx, 0)
	assert.Equal(t, cond, f.page.Condition(), "paging keeps the search condition")

	f.page.SetPage(ctx, -5)
	assert.Equal(t, 0, f.page.Pagination().Page)
}

func TestListPageErrorThenRetry(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P-001", "Widget")
	ctx := context.Background()

	f.failing.Store(true)
	f.page.Load(ctx)

	assert.Equal(t, StateError, f.page.State())
	state, _ := f.page.Empty()
	assert.True(t, state.Retry)
	assert.Equal(t, "Something went wrong", state.Title)

	current := f.toasts.Current()
	assert.True(t, current.Visible)
	assert.Equal(t, toast.SeverityError, current.Severity)

	f.failing.Store(false)
	f.page.Retry(ctx)

	assert.Equal(t, StateSuccess, f.page.State())
	require.Len(t, f.page.Data().Content, 1)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	f := newFixture(t)
	product := f.seed(t, "P-001", "Widget")
	ctx := context.Background()

	f.page.Load(ctx)
	f.page.RequestDelete(ctx, product)

	require.True(t, f.page.DeleteConfirm.IsOpen())
	assert.True(t, f.page.DeleteConfirm.Danger())
	assert.Contains(t, f.page.DeleteConfirm.Message(), "P-001")

	// Cancelling leaves the product alone.
	f.page.DeleteConfirm.Cancel()
	_, ok := f.store.GetProduct(product.ProductID)
	assert.True(t, ok)

	f.page.RequestDelete(ctx, product)
	f.page.DeleteConfirm.Confirm()

	_, ok = f.store.GetProduct(product.ProductID)
	assert.False(t, ok)
	assert.Equal(t, StateSuccess, f.page.State())
	assert.Empty(t, f.page.Data().Content, "the deleted row is gone after reload")

	current := f.toasts.Current()
	assert.Equal(t, msgProductDeleted, current.Message)
	assert.Equal(t, toast.SeveritySuccess, current.Severity)
}

func TestDeleteFailureLeavesDataIntact(t *testing.T) {
	f := newFixture(t)
	product := f.seed(t, "P-001", "Widget")
	ctx := context.Background()

	f.page.Load(ctx)

	f.failing.Store(true)
	f.page.RequestDelete(ctx, product)
	f.page.DeleteConfirm.Confirm()
	f.failing.Store(false)

	assert.Equal(t, StateSuccess, f.page.State())
	require.Len(t, f.page.Data().Content, 1, "prior data survives a failed delete")
	assert.Equal(t, toast.SeverityError, f.toasts.Current().Severity)
}

func TestEditorCreateFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.page.Load(ctx)

	f.page.Editor.OpenAdd()
	require.True(t, f.page.Editor.Modal.IsOpen())
	assert.False(t, f.page.Editor.IsEditing())

	form := f.page.Editor.Form()
	require.NotNil(t, form)
	form.ProductCode = "P-001"
	form.ProductName = "Widget"

	require.True(t, f.page.Editor.Submit(ctx))
	assert.False(t, f.page.Editor.Modal.IsOpen())
	assert.Nil(t, f.page.Editor.Form())

	assert.Equal(t, msgProductCreated, f.toasts.Current().Message)
	require.Len(t, f.page.Data().Content, 1)
	assert.Equal(t, "P-001", f.page.Data().Content[0].ProductCode)
}

func TestEditorValidationFailureKeepsModal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.page.Editor.OpenAdd()
	form := f.page.Editor.Form()
	form.ProductName = "Nameless Code"

	assert.False(t, f.page.Editor.Submit(ctx))
	assert.True(t, f.page.Editor.Modal.IsOpen())
	assert.NotEmpty(t, form.FieldError("ProductCode"))
}

func TestEditorDuplicateCodeKeepsFormValues(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P-001", "Existing")
	ctx := context.Background()
	f.page.Load(ctx)

	f.page.Editor.OpenAdd()
	form := f.page.Editor.Form()
	form.ProductCode = "P-001"
	form.ProductName = "Imposter"
	form.Description = "typed with care"

	assert.False(t, f.page.Editor.Submit(ctx))

	// The modal stays open and nothing the user typed is lost.
	require.True(t, f.page.Editor.Modal.IsOpen())
	form = f.page.Editor.Form()
	require.NotNil(t, form)
	assert.Equal(t, "Imposter", form.ProductName)
	assert.Equal(t, "typed with care", form.Description)

	current := f.toasts.Current()
	assert.Equal(t, toast.SeverityError, current.Severity)
	assert.Equal(t, "Product code already exists.", current.Message)
}

func TestEditorEditFlow(t *testing.T) {
	f := newFixture(t)
	product := f.seed(t, "P-001", "Widget")
	ctx := context.Background()
	f.page.Load(ctx)

	f.page.Editor.OpenEdit(product)
	require.True(t, f.page.Editor.IsEditing())

	form := f.page.Editor.Form()
	require.NotNil(t, form)
	assert.True(t, form.CodeLocked)

	form.ProductName = "Widget Pro"
	require.True(t, f.page.Editor.Submit(ctx))

	assert.Equal(t, msgProductUpdated, f.toasts.Current().Message)
	require.Len(t, f.page.Data().Content, 1)
	assert.Equal(t, "Widget Pro", f.page.Data().Content[0].ProductName)
}

func TestStaleResolutionDiscarded(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P-001", "Widget")
	ctx := context.Background()

	f.page.Load(ctx)
	before := f.page.Data()

	// A result resolved for an older generation never lands.
	f.page.SetSearch(ctx, model.ProductSearchCondition{})
	f.page.apply(0, model.Page[model.Product]{TotalElements: 999}, nil)

	assert.Equal(t, before.TotalElements, f.page.Data().TotalElements)
	assert.Equal(t, StateSuccess, f.page.State())
}

func TestRepeatedErrorRaisesOneToast(t *testing.T) {
	f := newFixture(t)

	var notifications int32
	cancel := f.toasts.Subscribe(func(toast.State) {
		atomic.AddInt32(&notifications, 1)
	})
	defer cancel()

	// The cache hands subscribers the same error instance the caller
	// gets; the second application must not raise a second toast.
	err := errors.New("load failed")
	f.page.apply(0, model.Page[model.Product]{}, err)
	f.page.apply(0, model.Page[model.Product]{}, err)

	assert.Equal(t, StateError, f.page.State())
	assert.Equal(t, int32(1), atomic.LoadInt32(&notifications))
}

func TestClosedPageIgnoresLoads(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "P-001", "Widget")

	f.page.Close()
	f.page.Load(context.Background())

	assert.Equal(t, StateIdle, f.page.State())
	assert.Empty(t, f.page.Data().Content)
}
