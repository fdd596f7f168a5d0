package main

import (
	"github.com/catalogops/console/internal/mockapi"
	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/pkg/ptr"
)

// seed fills the store with a handful of products so the console has
// something to browse out of the box.
func seed(store *mockapi.Store) {
	seeds := []struct {
		req   model.ProductRequest
		price float64
	}{
		{
			req: model.ProductRequest{
				ProductCode: "PROD-001",
				ProductName: "Thinkbook 14",
				Description: "14 inch developer laptop",
				CategoryID:  ptr.New[int64](2),
			},
			price: 1_450_000,
		},
		{
			req: model.ProductRequest{
				ProductCode: "PROD-002",
				ProductName: "Mechanical Keyboard",
				Description: "Tenkeyless, brown switches",
				CategoryID:  ptr.New[int64](3),
			},
			price: 120_000,
		},
		{
			req: model.ProductRequest{
				ProductCode: "PROD-003",
				ProductName: "Standing Desk",
				CategoryID:  ptr.New[int64](4),
				Status:      ptr.New(model.ProductStatusInactive),
			},
			price: 560_000,
		},
	}

	for _, s := range seeds {
		product, err := store.CreateProduct(s.req)
		if err != nil {
			continue
		}
		store.SetPrice(product.ProductID, s.price)
	}
}
