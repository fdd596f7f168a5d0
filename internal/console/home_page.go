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

// HomePage greets the operator and shows this week's change history,
// newest first.
type HomePage struct {
	cache  *querycache.Cache
	client *api.Client
	toasts *toast.Channel
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	state   LoadState
	entries model.Page[model.ChangeLogEntry]
	loadErr error
	gen     uint64
	closed  bool
}

// NewHomePage wires a home page to its collaborators.
func NewHomePage(cache *querycache.Cache, client *api.Client, toasts *toast.Channel, logger *slog.Logger) *HomePage {
	return &HomePage{
		cache:  cache,
		client: client,
		toasts: toasts,
		logger: logger.With(slog.String("page", "home")),
		now:    time.Now,
		state:  StateIdle,
	}
}

// Load fetches the current week's change logs through the cache.
func (p *HomePage) Load(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.state = StateLoading
	gen := p.gen
	p.mu.Unlock()

	weekStart, _ := format.WeekRange(p.now())
	pg := model.Pagination{Page: 0, Size: model.DefaultPageSize}

	key := querycache.Key(querycache.OpChangeLogs, "recent", weekStart, pg)
	entries, err := querycache.GetTyped(ctx, p.cache, key, func(ctx context.Context) (model.Page[model.ChangeLogEntry], error) {
		return p.client.ListRecentChangeLogs(ctx, weekStart, pg)
	})

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
	p.entries = entries
	p.loadErr = nil
	p.mu.Unlock()
}

// Close tears the page down; late resolutions are discarded.
func (p *HomePage) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.gen++
}

// State returns the current load state.
func (p *HomePage) State() LoadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Entries returns the loaded change history.
func (p *HomePage) Entries() model.Page[model.ChangeLogEntry] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entries
}

// Empty classifies the empty rendering, if any.
func (p *HomePage) Empty() (EmptyState, EmptyKind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.state == StateError:
		return ErrorState(apierr.Message(p.loadErr)), EmptyNoData
	case p.state != StateSuccess || len(p.entries.Content) > 0:
		return EmptyState{}, EmptyNone
	default:
		return EmptyState{
			Title:   "No recent changes",
			Message: "Nothing changed this week.",
		}, EmptyNoData
	}
}
