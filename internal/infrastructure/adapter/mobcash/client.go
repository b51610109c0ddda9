package mobcash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
)

// maxErrorBody caps how much of a failed response is read
const maxErrorBody = 1 << 20

// Config configures the Mobcash API client
type Config struct {
	BaseURL string
	// Token is used when the request context carries no bearer token
	Token     string
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the remote Mobcash REST API
type Client struct {
	baseURL   *url.URL
	token     string
	userAgent string
	http      *http.Client
	logger    core.Logger
	clock     core.TimeProvider
}

var _ gateway.MobcashGateway = (*Client)(nil)

// NewClient creates a Mobcash API client
func NewClient(cfg Config, logger core.Logger, clock core.TimeProvider) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid mobcash base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid mobcash base url %q: scheme must be http or https", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "mobcash-wallet"
	}

	return &Client{
		baseURL:   base,
		token:     cfg.Token,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		logger:    logger.With(map[string]any{"component": "mobcash_client"}),
		clock:     clock,
	}, nil
}

// do sends one request and decodes a 2xx JSON answer into out.
// out may be nil for calls whose answer is ignored.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	// JoinPath drops the trailing slash some endpoints need
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(endpoint.Path, "/") {
		endpoint.Path += "/"
	}
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := core.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	start := c.clock.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Mobcash request failed", map[string]any{
			"method":     method,
			"path":       path,
			"request_id": requestID,
			"error":      err.Error(),
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %s", errs.ErrUpstream, method, path, err.Error())
	}
	defer resp.Body.Close()

	fields := map[string]any{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": requestID,
		"elapsed":    c.clock.Since(start).Std().String(),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp, method, path)
		fields["message"] = apiErr.Message
		c.logger.Warn("Mobcash request rejected", fields)
		return apiErr
	}
	c.logger.Debug("Mobcash request", fields)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: decode %s %s: %s", errs.ErrUpstream, method, path, err.Error())
	}
	return nil
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token := gateway.BearerToken(ctx); token != "" {
		return token
	}
	return c.token
}

// decodeAPIError keeps the JSON object body when there is one and picks the
// best human message from it
func decodeAPIError(resp *http.Response, method, path string) *errs.APIError {
	apiErr := &errs.APIError{StatusCode: resp.StatusCode, Method: method, Path: path}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body map[string]any
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		apiErr.Body = body
		apiErr.Message = errs.FirstMatch(body, errs.MessageExtractors...)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func pageQuery(page entity.PageRequest) url.Values {
	p := page.Normalize()
	return url.Values{
		"page":      []string{fmt.Sprint(p.Page)},
		"page_size": []string{fmt.Sprint(p.PageSize)},
	}
}
