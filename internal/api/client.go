// Package api is the typed HTTP client for the catalog backend. It issues
// one request per operation and surfaces failures unchanged as typed
// errors; retry policy belongs to the query cache, not here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/catalogops/console/internal/apierr"
	"github.com/catalogops/console/internal/api/requestid"
	"github.com/catalogops/console/internal/config"
)

var tracer = otel.Tracer("internal/api")

// Client talks to the catalog backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// New creates a Client bound to the configured base URL. The configured
// request timeout applies to every call.
func New(cfg config.API, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger.With(slog.String("component", "api")),
	}
}

// do performs one HTTP exchange. A non-nil out is filled from a 2xx JSON
// body; non-2xx responses and transport failures come back as typed errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", method, path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	reqID := requestid.New()
	ctx = requestid.NewContext(ctx, reqID)

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestid.Header, reqID)

	resp, err := c.httpc.Do(req)
	if err != nil {
		netErr := classifyTransportErr(err)
		span.SetStatus(codes.Error, netErr.Kind.String())
		c.logger.WarnContext(ctx, "request transport failure",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", netErr))
		return netErr
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}

	return nil
}

// decodeError turns a non-2xx response into an APIError, keeping the
// server's payload when one is present.
func decodeError(resp *http.Response) error {
	var payload apierr.ErrorPayload

	buf, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(buf) > 0 {
		// A missing or malformed body still yields a typed status error.
		_ = json.Unmarshal(buf, &payload)
	}

	return apierr.NewAPIError(resp.StatusCode, payload)
}

func classifyTransportErr(err error) *apierr.NetworkError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apierr.NewNetworkError(apierr.NetworkKindTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierr.NewNetworkError(apierr.NetworkKindTimeout, err)
	}

	var dnsErr *net.DNSError
	if errors.Is(err, syscall.ECONNREFUSED) || errors.As(err, &dnsErr) {
		return apierr.NewNetworkError(apierr.NetworkKindUnreachable, err)
	}

	return apierr.NewNetworkError(apierr.NetworkKindFailure, err)
}
