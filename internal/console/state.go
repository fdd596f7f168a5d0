// Package console contains the pages and presentational pieces of the
// catalog admin console. Pages compose the query cache, API client and
// toast channel; all of those are injected, nothing here owns global
// state.
package console

// LoadState is the lifecycle of a page's current query.
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateSuccess
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// EmptyKind distinguishes why a successful listing has nothing to show.
type EmptyKind int

const (
	// EmptyNone means there is content to render.
	EmptyNone EmptyKind = iota
	// EmptyNoData means the catalog itself is empty.
	EmptyNoData
	// EmptyNoMatch means the active filter matched nothing.
	EmptyNoMatch
)

// EmptyState is the inline block rendered when a listing has no rows.
type EmptyState struct {
	Title   string
	Message string
	// Retry marks the block as retry-eligible (rendered after an error).
	Retry bool
}

// NoDataState is shown when no products exist at all.
func NoDataState() EmptyState {
	return EmptyState{
		Title:   "No products yet",
		Message: "Add your first product to get started.",
	}
}

// NoMatchState is shown when the active filter matched nothing.
func NoMatchState() EmptyState {
	return EmptyState{
		Title:   "No results",
		Message: "No products match this filter. Adjust the search and try again.",
	}
}

// ErrorState is shown when the listing failed to load.
func ErrorState(message string) EmptyState {
	return EmptyState{
		Title:   "Something went wrong",
		Message: message,
		Retry:   true,
	}
}
