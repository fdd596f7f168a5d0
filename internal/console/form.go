package console

import (
	govalidator "github.com/go-playground/validator/v10"

	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/pkg/validator"
)

// ProductForm holds the entered values of the add/edit product form.
// Values survive a failed submit so the user never loses input.
type ProductForm struct {
	ProductCode string
	ProductName string
	Description string
	CategoryID  *int64
	Status      model.ProductStatus

	// CodeLocked is set when editing: the product code is immutable
	// after creation.
	CodeLocked bool

	fieldErrors map[string]string
}

// NewProductForm returns an empty form with the status defaulted to
// ACTIVE, matching the add form's preset.
func NewProductForm() *ProductForm {
	return &ProductForm{Status: model.ProductStatusActive}
}

// FormFromProduct prefills a form for editing an existing product.
func FormFromProduct(p model.Product) *ProductForm {
	return &ProductForm{
		ProductCode: p.ProductCode,
		ProductName: p.ProductName,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Status:      p.Status,
		CodeLocked:  true,
	}
}

// Validate checks the form and records per-field messages. It returns
// true when the form is submittable.
func (f *ProductForm) Validate(v validator.Validator) bool {
	f.fieldErrors = make(map[string]string)

	if err := v.Validate(f.Request()); err != nil {
		if validator.IsValidationError(err) {
			for _, fe := range err.(govalidator.ValidationErrors) {
				f.fieldErrors[fe.Field()] = validator.ValidationErrorMessage(fe)
			}
		} else {
			f.fieldErrors[""] = err.Error()
		}
	}

	return len(f.fieldErrors) == 0
}

// FieldError returns the validation message for a field, empty when the
// field is valid.
func (f *ProductForm) FieldError(field string) string {
	return f.fieldErrors[field]
}

// Request builds the mutation payload from the entered values.
func (f *ProductForm) Request() model.ProductRequest {
	status := f.Status
	return model.ProductRequest{
		ProductCode: f.ProductCode,
		ProductName: f.ProductName,
		Description: f.Description,
		CategoryID:  f.CategoryID,
		Status:      &status,
	}
}
