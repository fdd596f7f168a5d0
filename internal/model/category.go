package model

// Category is a node in the flat category listing returned by the backend.
type Category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Depth        int    `json:"depth,omitempty"`
	SortOrder    int    `json:"sortOrder,omitempty"`
}
