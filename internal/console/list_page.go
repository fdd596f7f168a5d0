package console

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/catalogops/console/internal/api"
	"github.com/catalogops/console/internal/apierr"
	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/internal/querycache"
	"github.com/catalogops/console/internal/toast"
	"github.com/catalogops/console/pkg/validator"
)

// Toast copy for product mutations.
const (
	msgProductCreated = "Product created successfully."
	msgProductUpdated = "Product updated successfully."
	msgProductDeleted = "Product deleted successfully."
)

// ProductListPage drives the list/search/pagination flow. Changing the
// search condition resets to the first page; changing only the page does
// not touch the condition. Every load goes through the query cache.
type ProductListPage struct {
	cache  *querycache.Cache
	client *api.Client
	toasts *toast.Channel
	valid  validator.Validator
	logger *slog.Logger

	mu      sync.Mutex
	cond    model.ProductSearchCondition
	pg      model.Pagination
	state   LoadState
	data    model.Page[model.Product]
	loadErr error
	// gen guards against late resolutions: a load result whose
	// generation no longer matches is discarded instead of applied.
	gen    uint64
	closed bool
	unsub  func()

	// Editor holds the add/edit modal; preserved across failed submits.
	Editor ProductEditor
	// DeleteConfirm is the second affirmation step before a delete
	// mutation fires.
	DeleteConfirm ConfirmDialog
}

// NewProductListPage wires a list page to its collaborators.
func NewProductListPage(cache *querycache.Cache, client *api.Client, toasts *toast.Channel, valid validator.Validator, logger *slog.Logger) *ProductListPage {
	p := &ProductListPage{
		cache:  cache,
		client: client,
		toasts: toasts,
		valid:  valid,
		logger: logger.With(slog.String("page", "products")),
		pg:     model.Pagination{Page: 0, Size: model.DefaultPageSize},
		state:  StateIdle,
	}
	p.Editor.page = p

	return p
}

// Load fetches the current page through the cache and applies the result
// unless the parameters changed while the request was in flight.
func (p *ProductListPage) Load(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.state = StateLoading
	gen := p.gen
	cond, pg := p.cond, p.pg
	p.resubscribeLocked(cond, pg, gen)
	p.mu.Unlock()

	key := querycache.Key(querycache.OpProducts, cond, pg)
	data, err := querycache.GetTyped(ctx, p.cache, key, func(ctx context.Context) (model.Page[model.Product], error) {
		return p.client.ListProducts(ctx, cond, pg)
	})

	p.apply(gen, data, err)
}

// SetSearch replaces the search condition, resets to the first page and
// reloads.
func (p *ProductListPage) SetSearch(ctx context.Context, cond model.ProductSearchCondition) {
	p.mu.Lock()
	p.gen++
	p.cond = cond
	p.pg.Page = 0
	p.mu.Unlock()

	p.Load(ctx)
}

// ClearSearch drops all filters and reloads from the first page.
func (p *ProductListPage) ClearSearch(ctx context.Context) {
	p.SetSearch(ctx, model.ProductSearchCondition{})
}

// SetPage moves to another page of the same search condition.
func (p *ProductListPage) SetPage(ctx context.Context, page int) {
	if page < 0 {
		page = 0
	}

	p.mu.Lock()
	p.gen++
	p.pg.Page = page
	p.mu.Unlock()

	p.Load(ctx)
}

// Retry reloads after an error without changing any parameters.
func (p *ProductListPage) Retry(ctx context.Context) {
	p.mu.Lock()
	p.gen++
	p.mu.Unlock()

	p.Load(ctx)
}

// Close tears the page down. Late resolutions after Close are ignored;
// nothing mutates page state anymore.
func (p *ProductListPage) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
}

// State returns the current load state.
func (p *ProductListPage) State() LoadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Data returns the last successfully loaded page.
func (p *ProductListPage) Data() model.Page[model.Product] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data
}

// Condition returns the active search condition.
func (p *ProductListPage) Condition() model.ProductSearchCondition {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cond
}

// Pagination returns the active pagination parameters.
func (p *ProductListPage) Pagination() model.Pagination {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pg
}

// PageControl returns the pagination bar view-model.
func (p *ProductListPage) PageControl() PageControl {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PageControl{
		Current:       p.pg.Page,
		TotalPages:    p.data.TotalPages,
		TotalElements: p.data.TotalElements,
	}
}

// Empty classifies the current empty rendering, if any. An error state
// always yields a retry-eligible block.
func (p *ProductListPage) Empty() (EmptyState, EmptyKind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.state == StateError:
		return ErrorState(apierr.Message(p.loadErr)), EmptyNoData
	case p.state != StateSuccess || len(p.data.Content) > 0:
		return EmptyState{}, EmptyNone
	case p.cond.IsZero():
		return NoDataState(), EmptyNoData
	default:
		return NoMatchState(), EmptyNoMatch
	}
}

// RequestDelete opens the confirm dialog for a product. The mutation
// fires only on explicit confirmation; there is no undo.
func (p *ProductListPage) RequestDelete(ctx context.Context, product model.Product) {
	message := fmt.Sprintf("Delete product %q (%s)? This cannot be undone.",
		product.ProductName, product.ProductCode)

	p.DeleteConfirm.Open(message, true, func() {
		p.deleteProduct(ctx, product)
	})
}

func (p *ProductListPage) deleteProduct(ctx context.Context, product model.Product) {
	if err := p.client.DeleteProduct(ctx, product.ProductID); err != nil {
		// Prior cache state stays intact on failure.
		p.logger.WarnContext(ctx, "delete product failed",
			slog.Int64("product_id", product.ProductID),
			slog.Any("error", err))
		p.toasts.Error(apierr.Message(err))
		return
	}

	p.cache.Invalidate(querycache.OpProducts)
	p.cache.Invalidate(querycache.OpChangeLogs)
	p.toasts.Success(msgProductDeleted)
	p.Load(ctx)
}

// apply commits a load result unless it is stale or the page is closed.
func (p *ProductListPage) apply(gen uint64, data model.Page[model.Product], err error) {
	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		return
	}

	if err != nil {
		// The cache notifies subscribers with the same error the
		// caller receives; only the first application raises a toast.
		seen := p.state == StateError && p.loadErr == err
		p.state = StateError
		p.loadErr = err
		p.mu.Unlock()
		if !seen {
			p.toasts.Error(apierr.Message(err))
		}
		return
	}

	p.state = StateSuccess
	p.data = data
	p.loadErr = nil
	p.mu.Unlock()
}

// resubscribeLocked points the cache subscription at the current key so
// invalidation-triggered refetches reach this page. Callers hold p.mu.
func (p *ProductListPage) resubscribeLocked(cond model.ProductSearchCondition, pg model.Pagination, gen uint64) {
	if p.unsub != nil {
		p.unsub()
	}

	key := querycache.Key(querycache.OpProducts, cond, pg)
	p.unsub = p.cache.Subscribe(key, func(res querycache.Result) {
		data, ok := res.Data.(model.Page[model.Product])
		if res.Err != nil {
			p.apply(gen, model.Page[model.Product]{}, res.Err)
			return
		}
		if ok {
			p.apply(gen, data, nil)
		}
	})
}
