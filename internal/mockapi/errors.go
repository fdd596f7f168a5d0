package mockapi

import (
	"errors"
	"net/http"
)

var (
	errProductNotFound  = errors.New("product not found")
	errCategoryNotFound = errors.New("category not found")
	errDuplicateCode    = errors.New("product code already exists")
)

// Error codes mirrored from the catalog backend's taxonomy.
const (
	codeProductNotFound  = "PRODUCT_001"
	codeCategoryNotFound = "PRODUCT_002"
	codeDuplicateCode    = "PRODUCT_004"
	codeValidationFailed = "VALIDATION_FAILED"
	codeBadRequest       = "BAD_REQUEST"
	codeInternalError    = "SERVER_001"
)

func storeErrorStatus(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, errProductNotFound):
		return http.StatusNotFound, codeProductNotFound, "Product not found."
	case errors.Is(err, errCategoryNotFound):
		return http.StatusBadRequest, codeCategoryNotFound, "Category not found."
	case errors.Is(err, errDuplicateCode):
		return http.StatusConflict, codeDuplicateCode, "Product code already exists."
	default:
		return http.StatusInternalServerError, codeInternalError, "An internal server error occurred."
	}
}
