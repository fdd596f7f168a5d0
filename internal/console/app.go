package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/catalogops/console/internal/api"
	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/internal/querycache"
	"github.com/catalogops/console/internal/toast"
	"github.com/catalogops/console/pkg/validator"
)

// App owns the interactive command loop and all pages. Every service it
// uses is injected; Close tears the pages down.
type App struct {
	logger   *slog.Logger
	renderer *Renderer
	toasts   *toast.Channel
	out      io.Writer

	Products   *ProductListPage
	Home       *HomePage
	Statistics *StatisticsPage
	About      *AboutPage

	unsubToast func()
}

// NewApp wires the application together.
func NewApp(
	logger *slog.Logger,
	client *api.Client,
	cache *querycache.Cache,
	toasts *toast.Channel,
	renderer *Renderer,
	out io.Writer,
	about *AboutPage,
) (*App, error) {
	valid, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	app := &App{
		logger:     logger,
		renderer:   renderer,
		toasts:     toasts,
		out:        out,
		Products:   NewProductListPage(cache, client, toasts, valid, logger),
		Home:       NewHomePage(cache, client, toasts, logger),
		Statistics: NewStatisticsPage(cache, client, toasts, logger),
		About:      about,
	}

	app.unsubToast = toasts.Subscribe(func(state toast.State) {
		renderer.Toast(state)
	})

	return app, nil
}

// Close releases subscriptions and tears the pages down.
func (a *App) Close() {
	if a.unsubToast != nil {
		a.unsubToast()
	}
	a.Products.Close()
	a.Home.Close()
	a.Statistics.Close()
}

// Run reads commands until EOF or quit.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(a.out, "Catalog admin console. Type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		a.Dispatch(ctx, line)
	}

	return scanner.Err()
}

// Dispatch executes one command line.
func (a *App) Dispatch(ctx context.Context, line string) {
	// A pending confirm dialog captures the next answer.
	if a.Products.DeleteConfirm.IsOpen() {
		switch strings.ToLower(line) {
		case "y", "yes":
			a.Products.DeleteConfirm.Confirm()
			a.renderer.ProductList(a.Products)
		default:
			a.Products.DeleteConfirm.Cancel()
			fmt.Fprintln(a.out, "cancelled")
		}
		return
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		a.printHelp()
	case "list":
		a.Products.Load(ctx)
		a.renderer.ProductList(a.Products)
	case "search":
		cond, err := parseSearchArgs(args)
		if err != nil {
			fmt.Fprintln(a.out, err)
			return
		}
		a.Products.SetSearch(ctx, cond)
		a.renderer.ProductList(a.Products)
	case "clear":
		a.Products.ClearSearch(ctx)
		a.renderer.ProductList(a.Products)
	case "page":
		if len(args) != 1 {
			fmt.Fprintln(a.out, "usage: page <number>")
			return
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintln(a.out, "page must be a positive number")
			return
		}
		a.Products.SetPage(ctx, n-1)
		a.renderer.ProductList(a.Products)
	case "retry":
		a.Products.Retry(ctx)
		a.renderer.ProductList(a.Products)
	case "add":
		a.Products.Editor.OpenAdd()
		a.submitEditor(ctx, args)
	case "edit":
		if len(args) < 1 {
			fmt.Fprintln(a.out, "usage: edit <id> [field=value ...]")
			return
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "id must be a number")
			return
		}
		product, found := a.findProduct(id)
		if !found {
			fmt.Fprintln(a.out, "product not in the current page; run 'list' first")
			return
		}
		a.Products.Editor.OpenEdit(product)
		a.submitEditor(ctx, args[1:])
	case "delete":
		if len(args) != 1 {
			fmt.Fprintln(a.out, "usage: delete <id>")
			return
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "id must be a number")
			return
		}
		product, found := a.findProduct(id)
		if !found {
			fmt.Fprintln(a.out, "product not in the current page; run 'list' first")
			return
		}
		a.Products.RequestDelete(ctx, product)
		a.renderer.Confirm(&a.Products.DeleteConfirm)
	case "home":
		a.Home.Load(ctx)
		a.renderer.ChangeHistory(a.Home)
	case "stats":
		a.Statistics.Load(ctx)
		a.renderer.Statistics(a.Statistics)
	case "about":
		a.renderer.About(a.About)
	default:
		fmt.Fprintf(a.out, "unknown command %q; type 'help'\n", cmd)
	}
}

// submitEditor fills the open editor form from key=value arguments and
// submits. On failure the editor stays open with the entered values.
func (a *App) submitEditor(ctx context.Context, args []string) {
	form := a.Products.Editor.Form()
	if form == nil {
		return
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(a.out, "expected field=value, got %q\n", arg)
			return
		}
		switch key {
		case "code":
			if form.CodeLocked {
				fmt.Fprintln(a.out, "the product code cannot be changed")
				return
			}
			form.ProductCode = value
		case "name":
			form.ProductName = value
		case "desc":
			form.Description = value
		case "status":
			status := model.ProductStatus(strings.ToUpper(value))
			if err := status.Validate(); err != nil {
				fmt.Fprintln(a.out, err)
				return
			}
			form.Status = status
		case "category":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				fmt.Fprintln(a.out, "category must be a number")
				return
			}
			form.CategoryID = &id
		default:
			fmt.Fprintf(a.out, "unknown field %q\n", key)
			return
		}
	}

	if a.Products.Editor.Submit(ctx) {
		a.renderer.ProductList(a.Products)
		return
	}

	for _, field := range []string{"ProductCode", "ProductName", "Status"} {
		if msg := form.FieldError(field); msg != "" {
			fmt.Fprintf(a.out, "%s: %s\n", field, msg)
		}
	}
}

func (a *App) findProduct(id int64) (model.Product, bool) {
	for _, p := range a.Products.Data().Content {
		if p.ProductID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `commands:
  list                         load the product list
  search [name=v] [code=v] [min=n] [max=n] [status=s]
  clear                        drop all filters
  page <n>                     jump to page n
  retry                        reload after an error
  add code=v name=v [desc=v] [status=s] [category=n]
  edit <id> [name=v] [desc=v] [status=s] [category=n]
  delete <id>                  delete after confirmation
  home                         recent changes this week
  stats                        aggregate counts
  about                        version and backend info
  quit
`)
}

func parseSearchArgs(args []string) (model.ProductSearchCondition, error) {
	var cond model.ProductSearchCondition
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return cond, fmt.Errorf("expected field=value, got %q", arg)
		}
		switch key {
		case "name":
			cond.ProductName = value
		case "code":
			cond.ProductCode = value
		case "min":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return cond, fmt.Errorf("min must be a number")
			}
			cond.MinPrice = &f
		case "max":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return cond, fmt.Errorf("max must be a number")
			}
			cond.MaxPrice = &f
		case "status":
			status := model.ProductStatus(strings.ToUpper(value))
			if err := status.Validate(); err != nil {
				return cond, err
			}
			cond.Status = &status
		case "category":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return cond, fmt.Errorf("category must be a number")
			}
			cond.CategoryID = &id
		default:
			return cond, fmt.Errorf("unknown search field %q", key)
		}
	}
	return cond, nil
}
