package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/catalogops/console/internal/format"
	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/internal/toast"
)

// Renderer writes page views as text. It is the only place that turns
// page state into output; pages themselves never print.
type Renderer struct {
	w   io.Writer
	fmt *format.Formatter
	now func() time.Time
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, f *format.Formatter) *Renderer {
	return &Renderer{w: w, fmt: f, now: time.Now}
}

// Toast prints the toast slot when visible.
func (r *Renderer) Toast(state toast.State) {
	if !state.Visible {
		return
	}
	fmt.Fprintf(r.w, "[%s] %s\n", strings.ToUpper(string(state.Severity)), state.Message)
}

// EmptyState prints an inline empty block.
func (r *Renderer) EmptyState(es EmptyState) {
	fmt.Fprintf(r.w, "\n  %s\n  %s\n", es.Title, es.Message)
	if es.Retry {
		fmt.Fprintln(r.w, "  Type 'retry' to try again.")
	}
}

// ProductList prints the product list page: search summary, cards,
// pagination bar or the applicable empty block.
func (r *Renderer) ProductList(p *ProductListPage) {
	fmt.Fprintln(r.w, "== Products ==")

	if cond := p.Condition(); !cond.IsZero() {
		fmt.Fprintf(r.w, "filter: %s\n", describeCondition(cond))
	}

	switch p.State() {
	case StateLoading:
		fmt.Fprintln(r.w, "loading...")
		return
	case StateIdle:
		fmt.Fprintln(r.w, "type 'list' to load products")
		return
	}

	if es, kind := p.Empty(); kind != EmptyNone || es.Retry {
		r.EmptyState(es)
		return
	}

	data := p.Data()
	for _, product := range data.Content {
		r.productCard(product)
	}
	r.paginationBar(p.PageControl())
}

// productCard prints one product. Price is deliberately absent: the
// product payload carries none, so there is nothing truthful to show.
func (r *Renderer) productCard(p model.Product) {
	fmt.Fprintf(r.w, "  #%d %s [%s]\n", p.ProductID, p.ProductName, p.Status)
	fmt.Fprintf(r.w, "      code: %s\n", p.ProductCode)
	if p.CategoryName != "" {
		fmt.Fprintf(r.w, "      category: %s\n", p.CategoryName)
	}
	if p.Description != "" {
		fmt.Fprintf(r.w, "      %s\n", format.Truncate(p.Description, 50))
	}
	if p.CreatedDate != nil {
		fmt.Fprintf(r.w, "      created: %s\n", format.Date(p.CreatedDate))
	}
}

func (r *Renderer) paginationBar(pc PageControl) {
	if pc.TotalPages <= 0 {
		return
	}

	var b strings.Builder
	if pc.HasPrev() {
		b.WriteString("< ")
	}
	for _, n := range pc.Window(5) {
		if n == pc.Current {
			fmt.Fprintf(&b, "[%d] ", n+1)
		} else {
			fmt.Fprintf(&b, "%d ", n+1)
		}
	}
	if pc.HasNext() {
		b.WriteString(">")
	}

	fmt.Fprintf(r.w, "  page %d/%d - %s items  %s\n",
		pc.Current+1, pc.TotalPages, r.fmt.Count(pc.TotalElements), b.String())
}

// ChangeHistory prints the home page's recent changes.
func (r *Renderer) ChangeHistory(p *HomePage) {
	fmt.Fprintln(r.w, "== Recent changes ==")

	switch p.State() {
	case StateLoading:
		fmt.Fprintln(r.w, "loading...")
		return
	case StateIdle:
		fmt.Fprintln(r.w, "type 'home' to load recent changes")
		return
	}

	if es, kind := p.Empty(); kind != EmptyNone || es.Retry {
		r.EmptyState(es)
		return
	}

	now := r.now()
	for _, entry := range p.Entries().Content {
		r.changeLogLine(entry, now)
	}
}

func (r *Renderer) changeLogLine(e model.ChangeLogEntry, now time.Time) {
	when := format.RelativeTime(e.ChangedDate, now)
	fmt.Fprintf(r.w, "  %-6s %s (%s) %s", e.ChangeType, e.ProductName, e.ProductCode, when)
	if e.ChangedField != "" {
		fmt.Fprintf(r.w, "  %s: %q -> %q", e.ChangedField, e.OldValue, e.NewValue)
	}
	if e.ChangedBy != "" {
		fmt.Fprintf(r.w, "  by %s", e.ChangedBy)
	}
	fmt.Fprintln(r.w)
}

// Statistics prints the aggregate counts.
func (r *Renderer) Statistics(p *StatisticsPage) {
	fmt.Fprintln(r.w, "== Statistics ==")

	switch p.State() {
	case StateLoading:
		fmt.Fprintln(r.w, "loading...")
		return
	case StateError:
		r.EmptyState(ErrorState("Statistics are unavailable right now."))
		return
	case StateIdle:
		fmt.Fprintln(r.w, "type 'stats' to load statistics")
		return
	}

	s := p.Stats()
	fmt.Fprintf(r.w, "  products: %s total, %s active, %s inactive\n",
		r.fmt.Count(s.TotalProducts), r.fmt.Count(s.ActiveProducts), r.fmt.Count(s.InactiveProducts))
	fmt.Fprintf(r.w, "  this week: %s created, %s updated, %s deleted\n",
		r.fmt.Count(s.WeekCreates), r.fmt.Count(s.WeekUpdates), r.fmt.Count(s.WeekDeletes))
}

// About prints the about page.
func (r *Renderer) About(p *AboutPage) {
	fmt.Fprintf(r.w, "== About ==\n  %s %s\n  backend: %s\n", p.AppName, p.Version, p.BaseURL)
}

// Confirm prints a pending confirm dialog prompt.
func (r *Renderer) Confirm(d *ConfirmDialog) {
	if !d.IsOpen() {
		return
	}
	prompt := "confirm"
	if d.Danger() {
		prompt = "CONFIRM (destructive)"
	}
	fmt.Fprintf(r.w, "%s: %s  [yes/no]\n", prompt, d.Message())
}

func describeCondition(c model.ProductSearchCondition) string {
	var parts []string
	if c.ProductName != "" {
		parts = append(parts, fmt.Sprintf("name~%q", c.ProductName))
	}
	if c.ProductCode != "" {
		parts = append(parts, fmt.Sprintf("code~%q", c.ProductCode))
	}
	if c.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("minPrice=%v", *c.MinPrice))
	}
	if c.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("maxPrice=%v", *c.MaxPrice))
	}
	if c.CategoryID != nil {
		parts = append(parts, fmt.Sprintf("category=%d", *c.CategoryID))
	}
	if c.Status != nil {
		parts = append(parts, fmt.Sprintf("status=%s", *c.Status))
	}
	return strings.Join(parts, " ")
}
