package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/catalogops/console/internal/model"
)

// Change-log dates travel as local-datetime strings without a zone,
// matching the backend's ISO date-time binding.
const changeLogTimeLayout = "2006-01-02T15:04:05"

// ListChangeLogs fetches one page of change-log entries matching the
// search condition.
func (c *Client) ListChangeLogs(ctx context.Context, cond model.ChangeLogSearchCondition, p model.Pagination) (model.Page[model.ChangeLogEntry], error) {
	query := url.Values{}
	if cond.ProductID != nil {
		query.Set("productId", strconv.FormatInt(*cond.ProductID, 10))
	}
	if cond.ChangeType != nil {
		query.Set("changeType", string(*cond.ChangeType))
	}
	if cond.StartDate != nil {
		query.Set("startDate", cond.StartDate.Format(changeLogTimeLayout))
	}
	if cond.EndDate != nil {
		query.Set("endDate", cond.EndDate.Format(changeLogTimeLayout))
	}
	query.Set("page", strconv.Itoa(p.Page))
	query.Set("size", strconv.Itoa(p.Size))

	var page model.Page[model.ChangeLogEntry]
	if err := c.do(ctx, http.MethodGet, "/api/change-logs", query, nil, &page); err != nil {
		return model.Page[model.ChangeLogEntry]{}, fmt.Errorf("list change logs: %w", err)
	}

	return page, nil
}

// ListRecentChangeLogs fetches change-log entries since startDate, newest
// first.
func (c *Client) ListRecentChangeLogs(ctx context.Context, startDate time.Time, p model.Pagination) (model.Page[model.ChangeLogEntry], error) {
	query := url.Values{}
	query.Set("startDate", startDate.Format(changeLogTimeLayout))
	query.Set("page", strconv.Itoa(p.Page))
	query.Set("size", strconv.Itoa(p.Size))

	var page model.Page[model.ChangeLogEntry]
	if err := c.do(ctx, http.MethodGet, "/api/change-logs/recent", query, nil, &page); err != nil {
		return model.Page[model.ChangeLogEntry]{}, fmt.Errorf("list recent change logs: %w", err)
	}

	return page, nil
}
