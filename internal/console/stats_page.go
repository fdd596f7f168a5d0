package console

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/catalogops/console/internal/api"
	"github.com/catalogops/console/internal/apierr"
	"github.com/catalogops/console/internal/format"
	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/internal/querycache"
	"github.com/catalogops/console/internal/toast"
)

// Stats are the aggregate counts the statistics page renders. The
// backend exposes no dedicated count endpoints; counts come from the
// totalElements of single-row filtered listings, all through the cache.
type Stats struct {
	TotalProducts    int64
	ActiveProducts   int64
	InactiveProducts int64
	WeekCreates      int64
	WeekUpdates      int64
	WeekDeletes      int64
}

// StatisticsPage loads and renders aggregate catalog counts.
type StatisticsPage struct {
	cache  *querycache.Cache
	client *api.Client
	toasts *toast.Channel
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	state   LoadState
	stats   Stats
	loadErr error
	gen     uint64
	closed  bool
}

// NewStatisticsPage wires a statistics page to its collaborators.
func NewStatisticsPage(cache *querycache.Cache, client *api.Client, toasts *toast.Channel, logger *slog.Logger) *StatisticsPage {
	return &StatisticsPage{
		cache:  cache,
		client: client,
		toasts: toasts,
		logger: logger.With(slog.String("page", "statistics")),
		now:    time.Now,
		state:  StateIdle,
	}
}

// Load gathers all counts. The first failing count aborts the load.
func (p *StatisticsPage) Load(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.state = StateLoading
	gen := p.gen
	p.mu.Unlock()

	stats, err := p.gather(ctx)

	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.state = StateError
		p.loadErr = err
		p.mu.Unlock()
		p.toasts.Error(apierr.Message(err))
		return
	}
	p.state = StateSuccess
	p.stats = stats
	p.loadErr = nil
	p.mu.Unlock()
}

func (p *StatisticsPage) gather(ctx context.Context) (Stats, error) {
	var stats Stats
	var err error

	if stats.TotalProducts, err = p.countProducts(ctx, nil); err != nil {
		return Stats{}, err
	}
	active := model.ProductStatusActive
	if stats.ActiveProducts, err = p.countProducts(ctx, &active); err != nil {
		return Stats{}, err
	}
	inactive := model.ProductStatusInactive
	if stats.InactiveProducts, err = p.countProducts(ctx, &inactive); err != nil {
		return Stats{}, err
	}

	weekStart, weekEnd := format.WeekRange(p.now())
	if stats.WeekCreates, err = p.countChanges(ctx, model.ChangeTypeCreate, weekStart, weekEnd); err != nil {
		return Stats{}, err
	}
	if stats.WeekUpdates, err = p.countChanges(ctx, model.ChangeTypeUpdate, weekStart, weekEnd); err != nil {
		return Stats{}, err
	}
	if stats.WeekDeletes, err = p.countChanges(ctx, model.ChangeTypeDelete, weekStart, weekEnd); err != nil {
		return Stats{}, err
	}

	return stats, nil
}

// countProducts reads totalElements from a size-1 listing filtered by
// status.
func (p *StatisticsPage) countProducts(ctx context.Context, status *model.ProductStatus) (int64, error) {
	cond := model.ProductSearchCondition{Status: status}
	pg := model.Pagination{Page: 0, Size: 1}

	key := querycache.Key(querycache.OpProducts, "count", cond)
	page, err := querycache.GetTyped(ctx, p.cache, key, func(ctx context.Context) (model.Page[model.Product], error) {
		return p.client.ListProducts(ctx, cond, pg)
	})
	if err != nil {
		return 0, err
	}

	return page.TotalElements, nil
}

func (p *StatisticsPage) countChanges(ctx context.Context, changeType model.ChangeType, start, end time.Time) (int64, error) {
	cond := model.ChangeLogSearchCondition{
		ChangeType: &changeType,
		StartDate:  &start,
		EndDate:    &end,
	}
	pg := model.Pagination{Page: 0, Size: 1}

	key := querycache.Key(querycache.OpChangeLogs, "count", cond)
	page, err := querycache.GetTyped(ctx, p.cache, key, func(ctx context.Context) (model.Page[model.ChangeLogEntry], error) {
		return p.client.ListChangeLogs(ctx, cond, pg)
	})
	if err != nil {
		return 0, err
	}

	return page.TotalElements, nil
}

// Close tears the page down; late resolutions are discarded.
func (p *StatisticsPage) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.gen++
}

// State returns the current load state.
func (p *StatisticsPage) State() LoadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Stats returns the loaded counts.
func (p *StatisticsPage) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
