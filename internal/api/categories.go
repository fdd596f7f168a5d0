package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/catalogops/console/internal/model"
)

// ListCategories fetches the full flat category list.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}
