package model

// Pagination selects one page of a listing. Page is zero-based.
type Pagination struct {
	Page int
	Size int
}

// DefaultPageSize matches the backend's default listing size.
const DefaultPageSize = 10

// Page is one page of a server-side listing, mirroring the backend's
// paged response shape. Number is the zero-based page index.
//
// Invariants: len(Content) <= Size, and Number < TotalPages unless the
// requested page is out of range (Content empty).
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}
