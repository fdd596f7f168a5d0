package mockapi

import (
	"strings"
	"sync"
	"time"

	"github.com/catalogops/console/internal/model"
)

// productRecord is a stored product plus fields the catalog API does not
// expose on the product itself. Price lives in a separate price history
// upstream; here it only serves the min/max price filter.
type productRecord struct {
	product model.Product
	price   float64
}

// Store is the in-memory backing state for the mock backend. The real
// backend owns persistence; this exists for development and tests only.
type Store struct {
	mu          sync.Mutex
	products    map[int64]*productRecord
	byCode      map[string]int64
	changeLogs  []model.ChangeLogEntry
	categories  []model.Category
	nextProduct int64
	nextLog     int64

	now func() time.Time
}

// NewStore creates an empty store with a small fixed category tree.
func NewStore() *Store {
	return &Store{
		products: make(map[int64]*productRecord),
		byCode:   make(map[string]int64),
		categories: []model.Category{
			{CategoryID: 1, CategoryName: "Electronics", Depth: 0, SortOrder: 1},
			{CategoryID: 2, CategoryName: "Laptops", Depth: 1, SortOrder: 1},
			{CategoryID: 3, CategoryName: "Accessories", Depth: 1, SortOrder: 2},
			{CategoryID: 4, CategoryName: "Furniture", Depth: 0, SortOrder: 2},
		},
		nextProduct: 1,
		nextLog:     1,
		now:         time.Now,
	}
}

// ListProducts returns one page of products matching the condition,
// ordered by id.
func (s *Store) ListProducts(cond model.ProductSearchCondition, p model.Pagination) model.Page[model.Product] {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.Product
	for id := int64(1); id < s.nextProduct; id++ {
		rec, ok := s.products[id]
		if !ok || !s.matches(rec, cond) {
			continue
		}
		matched = append(matched, rec.product)
	}

	return paginate(matched, p)
}

func (s *Store) matches(rec *productRecord, cond model.ProductSearchCondition) bool {
	if cond.ProductName != "" && !strings.Contains(
		strings.ToLower(rec.product.ProductName), strings.ToLower(cond.ProductName)) {
		return false
	}
	if cond.ProductCode != "" && !strings.Contains(
		strings.ToLower(rec.product.ProductCode), strings.ToLower(cond.ProductCode)) {
		return false
	}
	if cond.MinPrice != nil && rec.price < *cond.MinPrice {
		return false
	}
	if cond.MaxPrice != nil && rec.price > *cond.MaxPrice {
		return false
	}
	if cond.CategoryID != nil &&
		(rec.product.CategoryID == nil || *rec.product.CategoryID != *cond.CategoryID) {
		return false
	}
	if cond.Status != nil && rec.product.Status != *cond.Status {
		return false
	}
	return true
}

// GetProduct returns the product with the given id.
func (s *Store) GetProduct(id int64) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.products[id]
	if !ok {
		return model.Product{}, false
	}
	return rec.product, true
}

// CreateProduct stores a new product and appends a CREATE change-log
// entry. It fails when the product code is already taken or the category
// does not exist.
func (s *Store) CreateProduct(req model.ProductRequest) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byCode[req.ProductCode]; taken {
		return model.Product{}, errDuplicateCode
	}

	categoryName, err := s.categoryName(req.CategoryID)
	if err != nil {
		return model.Product{}, err
	}

	status := model.ProductStatusActive
	if req.Status != nil {
		status = *req.Status
	}

	now := s.now()
	product := model.Product{
		ProductID:        s.nextProduct,
		ProductCode:      req.ProductCode,
		ProductName:      req.ProductName,
		Description:      req.Description,
		CategoryID:       req.CategoryID,
		CategoryName:     categoryName,
		Status:           status,
		CreatedDate:      &now,
		LastModifiedDate: &now,
	}
	s.nextProduct++
	s.products[product.ProductID] = &productRecord{product: product}
	s.byCode[product.ProductCode] = product.ProductID

	s.appendLog(product, model.ChangeTypeCreate, "", "", "")

	return product, nil
}

// UpdateProduct replaces the mutable fields of a product and appends one
// field-level UPDATE entry per changed field. The product code never
// changes; the request's code field is ignored.
func (s *Store) UpdateProduct(id int64, req model.ProductRequest) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.products[id]
	if !ok {
		return model.Product{}, errProductNotFound
	}

	categoryName, err := s.categoryName(req.CategoryID)
	if err != nil {
		return model.Product{}, err
	}

	prev := rec.product
	next := prev
	next.ProductName = req.ProductName
	next.Description = req.Description
	next.CategoryID = req.CategoryID
	next.CategoryName = categoryName
	if req.Status != nil {
		next.Status = *req.Status
	}
	now := s.now()
	next.LastModifiedDate = &now

	if prev.ProductName != next.ProductName {
		s.appendLog(next, model.ChangeTypeUpdate, "productName", prev.ProductName, next.ProductName)
	}
	if prev.Description != next.Description {
		s.appendLog(next, model.ChangeTypeUpdate, "description", prev.Description, next.Description)
	}
	if prev.CategoryName != next.CategoryName {
		s.appendLog(next, model.ChangeTypeUpdate, "category", prev.CategoryName, next.CategoryName)
	}
	if prev.Status != next.Status {
		s.appendLog(next, model.ChangeTypeUpdate, "status", string(prev.Status), string(next.Status))
	}

	rec.product = next

	return next, nil
}

// DeleteProduct removes a product and appends a DELETE change-log entry.
func (s *Store) DeleteProduct(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.products[id]
	if !ok {
		return errProductNotFound
	}

	delete(s.products, id)
	delete(s.byCode, rec.product.ProductCode)
	s.appendLog(rec.product, model.ChangeTypeDelete, "", "", "")

	return nil
}

// SetPrice assigns the filter price of a product. Seed data only; the
// API exposes no price mutation.
func (s *Store) SetPrice(id int64, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.products[id]; ok {
		rec.price = price
	}
}

// ListChangeLogs returns one page of change-log entries matching the
// condition, newest first.
func (s *Store) ListChangeLogs(cond model.ChangeLogSearchCondition, p model.Pagination) model.Page[model.ChangeLogEntry] {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.ChangeLogEntry
	for i := len(s.changeLogs) - 1; i >= 0; i-- {
		entry := s.changeLogs[i]
		if cond.ProductID != nil && entry.ProductID != *cond.ProductID {
			continue
		}
		if cond.ChangeType != nil && entry.ChangeType != *cond.ChangeType {
			continue
		}
		if cond.StartDate != nil && entry.ChangedDate.Before(*cond.StartDate) {
			continue
		}
		if cond.EndDate != nil && entry.ChangedDate.After(*cond.EndDate) {
			continue
		}
		matched = append(matched, entry)
	}

	return paginate(matched, p)
}

// Categories returns the flat category list.
func (s *Store) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) categoryName(id *int64) (string, error) {
	if id == nil {
		return "", nil
	}
	for _, c := range s.categories {
		if c.CategoryID == *id {
			return c.CategoryName, nil
		}
	}
	return "", errCategoryNotFound
}

// appendLog records a change with a product snapshot. Callers must hold
// s.mu.
func (s *Store) appendLog(product model.Product, changeType model.ChangeType, field, oldValue, newValue string) {
	s.changeLogs = append(s.changeLogs, model.ChangeLogEntry{
		ChangeLogID:  s.nextLog,
		ProductID:    product.ProductID,
		ProductCode:  product.ProductCode,
		ProductName:  product.ProductName,
		ChangeType:   changeType,
		ChangedField: field,
		OldValue:     oldValue,
		NewValue:     newValue,
		ChangedBy:    "admin",
		ChangedDate:  s.now(),
	})
	s.nextLog++
}

func paginate[T any](items []T, p model.Pagination) model.Page[T] {
	total := len(items)
	totalPages := 0
	if p.Size > 0 {
		totalPages = (total + p.Size - 1) / p.Size
	}

	start := p.Page * p.Size
	end := start + p.Size
	content := []T{}
	if start < total {
		if end > total {
			end = total
		}
		content = items[start:end]
	}

	return model.Page[T]{
		Content:       content,
		TotalElements: int64(total),
		TotalPages:    totalPages,
		Size:          p.Size,
		Number:        p.Page,
		First:         p.Page == 0,
		Last:          totalPages == 0 || p.Page >= totalPages-1,
	}
}
