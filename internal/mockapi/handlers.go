package mockapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	govalidator "github.com/go-playground/validator/v10"

	"github.com/catalogops/console/internal/apierr"
	"github.com/catalogops/console/internal/model"
	"github.com/catalogops/console/pkg/validator"
)

func (s *Service) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cond := model.ProductSearchCondition{
		ProductName: q.Get("productName"),
		ProductCode: q.Get("productCode"),
	}

	var err error
	if cond.MinPrice, err = parseFloatParam(q.Get("minPrice")); err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "minPrice must be a number")
		return
	}
	if cond.MaxPrice, err = parseFloatParam(q.Get("maxPrice")); err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "maxPrice must be a number")
		return
	}
	if cond.CategoryID, err = parseIntParam(q.Get("categoryId")); err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "categoryId must be an integer")
		return
	}
	if v := q.Get("status"); v != "" {
		status := model.ProductStatus(v)
		if err := status.Validate(); err != nil {
			s.respondError(w, r, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
		cond.Status = &status
	}

	p, err := parsePagination(q.Get("page"), q.Get("size"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, s.store.ListProducts(cond, p))
}

func (s *Service) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "id must be an integer")
		return
	}

	product, ok := s.store.GetProduct(id)
	if !ok {
		s.respondStoreError(w, r, errProductNotFound)
		return
	}

	s.respondJSON(w, http.StatusOK, product)
}

func (s *Service) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := s.store.CreateProduct(req)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, product)
}

func (s *Service) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "id must be an integer")
		return
	}

	req, ok := s.decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := s.store.UpdateProduct(id, req)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, product)
}

func (s *Service) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "id must be an integer")
		return
	}

	if err := s.store.DeleteProduct(id); err != nil {
		s.respondStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleListChangeLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var cond model.ChangeLogSearchCondition

	var err error
	if cond.ProductID, err = parseIntParam(q.Get("productId")); err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "productId must be an integer")
		return
	}
	if v := q.Get("changeType"); v != "" {
		changeType := model.ChangeType(v)
		if err := changeType.Validate(); err != nil {
			s.respondError(w, r, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
		cond.ChangeType = &changeType
	}
	if cond.StartDate, err = parseTimeParam(q.Get("startDate")); err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "startDate must be an ISO date-time")
		return
	}
	if cond.EndDate, err = parseTimeParam(q.Get("endDate")); err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "endDate must be an ISO date-time")
		return
	}

	p, err := parsePagination(q.Get("page"), q.Get("size"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, s.store.ListChangeLogs(cond, p))
}

func (s *Service) handleRecentChangeLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startDate, err := parseTimeParam(q.Get("startDate"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "startDate must be an ISO date-time")
		return
	}
	if startDate == nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "startDate is required")
		return
	}

	p, err := parsePagination(q.Get("page"), q.Get("size"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, s.store.ListChangeLogs(model.ChangeLogSearchCondition{
		StartDate: startDate,
	}, p))
}

func (s *Service) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.Categories())
}

func (s *Service) decodeProductRequest(w http.ResponseWriter, r *http.Request) (model.ProductRequest, bool) {
	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return model.ProductRequest{}, false
	}

	if err := s.validator.Validate(req); err != nil {
		var validationErrs govalidator.ValidationErrors
		message := "validation error"
		if ok := validator.IsValidationError(err); ok {
			validationErrs = err.(govalidator.ValidationErrors)
			if len(validationErrs) > 0 {
				fe := validationErrs[0]
				message = fmt.Sprintf("%s %s", fe.Field(), validator.ValidationErrorMessage(fe))
			}
		}
		s.respondError(w, r, http.StatusBadRequest, codeValidationFailed, message)
		return model.ProductRequest{}, false
	}

	return req, true
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding response", slog.Any("error", err))
	}
}

func (s *Service) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := storeErrorStatus(err)
	s.respondError(w, r, status, code, message)
}

func (s *Service) respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	now := time.Now()
	payload := apierr.ErrorPayload{
		ErrorCode: code,
		Message:   message,
		Timestamp: &now,
		Path:      r.URL.Path,
	}

	logLevel := slog.LevelWarn
	if status >= 500 {
		logLevel = slog.LevelError
	}
	s.logger.Log(r.Context(), logLevel, "request failed",
		slog.Int("status", status),
		slog.String("code", code),
		slog.String("path", r.URL.Path))

	s.respondJSON(w, status, payload)
}

func parseFloatParam(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func parseIntParam(v string) (*int64, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseTimeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unparseable date-time: %q", v)
}

func parsePagination(page, size string) (model.Pagination, error) {
	p := model.Pagination{Page: 0, Size: model.DefaultPageSize}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 0 {
			return model.Pagination{}, fmt.Errorf("page must be a non-negative integer")
		}
		p.Page = n
	}
	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n <= 0 {
			return model.Pagination{}, fmt.Errorf("size must be a positive integer")
		}
		p.Size = n
	}

	return p, nil
}
