package model

import (
	"fmt"
	"time"
)

// ProductStatus is the lifecycle state of a product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
	ProductStatusDeleted  ProductStatus = "DELETED"
)

// Validate reports whether the status is one of the known values.
func (s ProductStatus) Validate() error {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDeleted:
		return nil
	}
	return fmt.Errorf("unknown product status: %q", s)
}

// Product is a catalog record as returned by the backend. The server is
// authoritative; the console only holds transient copies.
type Product struct {
	ProductID        int64         `json:"productId"`
	ProductCode      string        `json:"productCode"`
	ProductName      string        `json:"productName"`
	Description      string        `json:"description,omitempty"`
	CategoryID       *int64        `json:"categoryId,omitempty"`
	CategoryName     string        `json:"categoryName,omitempty"`
	Status           ProductStatus `json:"status"`
	CreatedDate      *time.Time    `json:"createdDate,omitempty"`
	LastModifiedDate *time.Time    `json:"lastModifiedDate,omitempty"`
}

// ProductRequest is the create/update payload. ProductCode is immutable
// after creation; the backend rejects attempts to change it.
type ProductRequest struct {
	ProductCode string         `json:"productCode" validate:"required"`
	ProductName string         `json:"productName" validate:"required"`
	Description string         `json:"description,omitempty"`
	CategoryID  *int64         `json:"categoryId,omitempty"`
	Status      *ProductStatus `json:"status,omitempty" validate:"omitempty,enum"`
}

// ProductSearchCondition filters product listings. Zero-valued fields are
// not sent; an all-zero condition matches everything.
type ProductSearchCondition struct {
	ProductName string
	ProductCode string
	MinPrice    *float64
	MaxPrice    *float64
	CategoryID  *int64
	Status      *ProductStatus
}

// IsZero reports whether no filter field is set.
func (c ProductSearchCondition) IsZero() bool {
	return c.ProductName == "" && c.ProductCode == "" &&
		c.MinPrice == nil && c.MaxPrice == nil &&
		c.CategoryID == nil && c.Status == nil
}
