package api_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogops/console/internal/api"
	"github.com/catalogops/console/internal/apierr"
	"github.com/catalogops/console/internal/config"
	"github.com/catalogops/console/internal/mockapi"
	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/pkg/ptr"
)

func newTestClient(t *testing.T) (*api.Client, *mockapi.Store) {
	t.Helper()

	store := mockapi.NewStore()
	svc, err := mockapi.New(config.HTTP{}, slog.New(slog.DiscardHandler), store)
	require.NoError(t, err)

	server := httptest.NewServer(svc.Router())
	t.Cleanup(server.Close)

	client := api.New(config.API{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}, slog.New(slog.DiscardHandler))

	return client, store
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, model.ProductRequest{
		ProductCode: "P-001",
		ProductName: "Widget",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ProductID)
	assert.Equal(t, model.ProductStatusActive, created.Status,
		"status defaults to ACTIVE when unspecified")

	fetched, err := client.GetProduct(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "P-001", fetched.ProductCode)
	assert.Equal(t, "Widget", fetched.ProductName)
	require.NotNil(t, fetched.CreatedDate)
}

func TestListProductsPageInvariants(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for i := range 7 {
		_, err := client.CreateProduct(ctx, model.ProductRequest{
			ProductCode: "P-" + string(rune('A'+i)),
			ProductName: "Item",
		})
		require.NoError(t, err)
	}

	page, err := client.ListProducts(ctx, model.ProductSearchCondition{}, model.Pagination{Page: 0, Size: 3})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(page.Content), page.Size)
	assert.Equal(t, int64(7), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	assert.Less(t, page.Number, page.TotalPages)

	last, err := client.ListProducts(ctx, model.ProductSearchCondition{}, model.Pagination{Page: 2, Size: 3})
	require.NoError(t, err)
	assert.Len(t, last.Content, 1)
	assert.True(t, last.Last)

	// Out of range pages come back empty rather than failing.
	beyond, err := client.ListProducts(ctx, model.ProductSearchCondition{}, model.Pagination{Page: 9, Size: 3})
	require.NoError(t, err)
	assert.Empty(t, beyond.Content)
}

func TestListProductsPriceFilter(t *testing.T) {
	client, store := newTestClient(t)
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, model.ProductRequest{
		ProductCode: "P-100",
		ProductName: "Cheap Thing",
	})
	require.NoError(t, err)
	store.SetPrice(created.ProductID, 500)

	page, err := client.ListProducts(ctx, model.ProductSearchCondition{
		MinPrice: ptr.New(1000.0),
		MaxPrice: ptr.New(5000.0),
	}, model.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Content, "nothing priced inside the bounds")
	assert.Equal(t, int64(0), page.TotalElements)
}

func TestCreateDuplicateCodeConflict(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateProduct(ctx, model.ProductRequest{ProductCode: "DUP-1", ProductName: "First"})
	require.NoError(t, err)

	_, err = client.CreateProduct(ctx, model.ProductRequest{ProductCode: "DUP-1", ProductName: "Second"})
	require.Error(t, err)

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Product code already exists.", apiErr.Message)
	assert.Equal(t, "Product code already exists.", apierr.Message(err),
		"the server's message wins over the fixed 409 message")
}

func TestCreateValidationFailure(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.CreateProduct(context.Background(), model.ProductRequest{ProductName: "No Code"})
	require.Error(t, err)

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.False(t, apierr.IsRetryable(err))
}

func TestGetProductNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetProduct(context.Background(), 9999)
	require.Error(t, err)

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestUpdateProductWritesFieldLevelChangeLogs(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, model.ProductRequest{
		ProductCode: "P-200",
		ProductName: "Old Name",
	})
	require.NoError(t, err)

	updated, err := client.UpdateProduct(ctx, created.ProductID, model.ProductRequest{
		ProductCode: "P-200",
		ProductName: "New Name",
		Description: "now with a description",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.ProductName)

	logs, err := client.ListChangeLogs(ctx, model.ChangeLogSearchCondition{
		ProductID:  &created.ProductID,
		ChangeType: ptr.New(model.ChangeTypeUpdate),
	}, model.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, logs.Content, 2, "one entry per changed field")

	fields := map[string]bool{}
	for _, entry := range logs.Content {
		fields[entry.ChangedField] = true
		assert.Equal(t, model.ChangeTypeUpdate, entry.ChangeType)
	}
	assert.True(t, fields["productName"])
	assert.True(t, fields["description"])
}

func TestDeleteProduct(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, model.ProductRequest{
		ProductCode: "P-300",
		ProductName: "Doomed",
	})
	require.NoError(t, err)

	require.NoError(t, client.DeleteProduct(ctx, created.ProductID))

	page, err := client.ListProducts(ctx, model.ProductSearchCondition{}, model.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	for _, p := range page.Content {
		assert.NotEqual(t, created.ProductID, p.ProductID, "deleted id must not reappear")
	}

	logs, err := client.ListChangeLogs(ctx, model.ChangeLogSearchCondition{
		ChangeType: ptr.New(model.ChangeTypeDelete),
	}, model.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	require.NotEmpty(t, logs.Content)
	assert.Equal(t, created.ProductID, logs.Content[0].ProductID)
}

func TestListRecentChangeLogs(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateProduct(ctx, model.ProductRequest{ProductCode: "P-400", ProductName: "Fresh"})
	require.NoError(t, err)

	page, err := client.ListRecentChangeLogs(ctx, time.Now().Add(-time.Hour), model.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	require.NotEmpty(t, page.Content)
	assert.Equal(t, model.ChangeTypeCreate, page.Content[0].ChangeType)
}

func TestListCategories(t *testing.T) {
	client, _ := newTestClient(t)

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, categories)
}

func TestUnreachableServerClassified(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := api.New(config.API{BaseURL: baseURL, RequestTimeout: time.Second},
		slog.New(slog.DiscardHandler))

	_, err := client.ListCategories(context.Background())
	require.Error(t, err)

	var netErr *apierr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, apierr.NetworkKindUnreachable, netErr.Kind)
	assert.True(t, apierr.IsRetryable(err))
	assert.Equal(t, apierr.MsgUnreachable, apierr.Message(err))
}

func TestTimeoutClassified(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(slow.Close)

	client := api.New(config.API{BaseURL: slow.URL, RequestTimeout: 20 * time.Millisecond},
		slog.New(slog.DiscardHandler))

	_, err := client.ListCategories(context.Background())
	require.Error(t, err)

	var netErr *apierr.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, apierr.NetworkKindTimeout, netErr.Kind)
	assert.Equal(t, apierr.MsgTimeout, apierr.Message(err))
}
