package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/catalogops/console/internal/model"
)

// ListProducts fetches one page of products matching the search condition.
// Unset condition fields are omitted from the query string.
func (c *Client) ListProducts(ctx context.Context, cond model.ProductSearchCondition, p model.Pagination) (model.Page[model.Product], error) {
	query := url.Values{}
	if cond.ProductName != "" {
		query.Set("productName", cond.ProductName)
	}
	if cond.ProductCode != "" {
		query.Set("productCode", cond.ProductCode)
	}
	if cond.MinPrice != nil {
		query.Set("minPrice", strconv.FormatFloat(*cond.MinPrice, 'f', -1, 64))
	}
	if cond.MaxPrice != nil {
		query.Set("maxPrice", strconv.FormatFloat(*cond.MaxPrice, 'f', -1, 64))
	}
	if cond.CategoryID != nil {
		query.Set("categoryId", strconv.FormatInt(*cond.CategoryID, 10))
	}
	if cond.Status != nil {
		query.Set("status", string(*cond.Status))
	}
	query.Set("page", strconv.Itoa(p.Page))
	query.Set("size", strconv.Itoa(p.Size))

	var page model.Page[model.Product]
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, &page); err != nil {
		return model.Page[model.Product]{}, fmt.Errorf("list products: %w", err)
	}

	return page, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	var product model.Product
	path := fmt.Sprintf("/api/products/%d", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return model.Product{}, fmt.Errorf("get product %d: %w", productID, err)
	}

	return product, nil
}

// CreateProduct submits a new product and returns the created record.
func (c *Client) CreateProduct(ctx context.Context, req model.ProductRequest) (model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, req, &product); err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

// UpdateProduct replaces a product's mutable fields and returns the
// updated record. The product code cannot change.
func (c *Client) UpdateProduct(ctx context.Context, productID int64, req model.ProductRequest) (model.Product, error) {
	var product model.Product
	path := fmt.Sprintf("/api/products/%d", productID)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &product); err != nil {
		return model.Product{}, fmt.Errorf("update product %d: %w", productID, err)
	}

	return product, nil
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/api/products/%d", productID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete product %d: %w", productID, err)
	}

	return nil
}
