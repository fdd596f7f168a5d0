package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/pkg/ptr"
	"github.com/catalogops/console/pkg/validator"
)

func newFormValidator(t *testing.T) validator.Validator {
	t.Helper()
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)
	return v
}

func TestNewProductFormDefaults(t *testing.T) {
	f := NewProductForm()
	assert.Equal(t, model.ProductStatusActive, f.Status)
	assert.False(t, f.CodeLocked)
}

func TestFormFromProductLocksCode(t *testing.T) {
	f := FormFromProduct(model.Product{
		ProductCode: "P-001",
		ProductName: "Widget",
		Description: "a widget",
		CategoryID:  ptr.New(int64(2)),
		Status:      model.ProductStatusInactive,
	})

	assert.True(t, f.CodeLocked)
	assert.Equal(t, "P-001", f.ProductCode)
	assert.Equal(t, model.ProductStatusInactive, f.Status)
}

func TestFormValidateRecordsFieldErrors(t *testing.T) {
	v := newFormValidator(t)

	f := NewProductForm()
	assert.False(t, f.Validate(v))
	assert.NotEmpty(t, f.FieldError("ProductCode"))
	assert.NotEmpty(t, f.FieldError("ProductName"))

	f.ProductCode = "P-001"
	f.ProductName = "Widget"
	assert.True(t, f.Validate(v))
	assert.Empty(t, f.FieldError("ProductCode"))
}

func TestFormValidateRejectsBadStatus(t *testing.T) {
	v := newFormValidator(t)

	f := NewProductForm()
	f.ProductCode = "P-001"
	f.ProductName = "Widget"
	f.Status = "BOGUS"
	assert.False(t, f.Validate(v))
	assert.NotEmpty(t, f.FieldError("Status"))
}

func TestFormRequest(t *testing.T) {
	f := &ProductForm{
		ProductCode: "P-001",
		ProductName: "Widget",
		Description: "a widget",
		CategoryID:  ptr.New(int64(3)),
		Status:      model.ProductStatusInactive,
	}

	req := f.Request()
	assert.Equal(t, "P-001", req.ProductCode)
	assert.Equal(t, "Widget", req.ProductName)
	require.NotNil(t, req.Status)
	assert.Equal(t, model.ProductStatusInactive, *req.Status)
	require.NotNil(t, req.CategoryID)
	assert.Equal(t, int64(3), *req.CategoryID)
}
