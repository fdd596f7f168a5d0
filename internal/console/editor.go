package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/catalogops/console/internal/apierr"
	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/internal/querycache"
)

// ProductEditor is the add/edit modal of the product list page. On a
// failed submit the modal stays open and the entered values survive, so
// the user can correct and resubmit.
type ProductEditor struct {
	Modal Modal

	mu      sync.Mutex
	form    *ProductForm
	editing *model.Product

	page *ProductListPage
}

// OpenAdd shows an empty form for creating a product.
func (e *ProductEditor) OpenAdd() {
	e.mu.Lock()
	e.form = NewProductForm()
	e.editing = nil
	e.mu.Unlock()

	e.Modal.Open("Add product")
}

// OpenEdit shows the form prefilled from an existing product. The
// product code is locked.
func (e *ProductEditor) OpenEdit(product model.Product) {
	e.mu.Lock()
	e.form = FormFromProduct(product)
	target := product
	e.editing = &target
	e.mu.Unlock()

	e.Modal.Open("Edit product")
}

// Cancel closes the modal and discards the form.
func (e *ProductEditor) Cancel() {
	e.Modal.Close()

	e.mu.Lock()
	e.form = nil
	e.editing = nil
	e.mu.Unlock()
}

// Form returns the active form, nil when the modal is closed.
func (e *ProductEditor) Form() *ProductForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// IsEditing reports whether the modal edits an existing product.
func (e *ProductEditor) IsEditing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing != nil
}

// Submit validates the form and fires the create or update mutation.
// On success the modal closes, product and change-log caches are
// invalidated and a success toast shows. On failure nothing is
// invalidated and the modal stays open.
func (e *ProductEditor) Submit(ctx context.Context) bool {
	e.mu.Lock()
	form := e.form
	editing := e.editing
	e.mu.Unlock()

	if form == nil {
		return false
	}

	p := e.page
	if !form.Validate(p.valid) {
		return false
	}

	var err error
	message := msgProductCreated
	if editing != nil {
		_, err = p.client.UpdateProduct(ctx, editing.ProductID, form.Request())
		message = msgProductUpdated
	} else {
		_, err = p.client.CreateProduct(ctx, form.Request())
	}

	if err != nil {
		p.logger.WarnContext(ctx, "product mutation failed", slog.Any("error", err))
		p.toasts.Error(apierr.Message(err))
		return false
	}

	e.Cancel()
	p.cache.Invalidate(querycache.OpProducts)
	p.cache.Invalidate(querycache.OpChangeLogs)
	p.toasts.Success(message)
	p.Load(ctx)

	return true
}
