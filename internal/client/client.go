// Package client talks to the buildmyhome HTTP API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"buildmyhome/internal/model"
)

// ErrStatus is wrapped by every error caused by a non-2xx response
var ErrStatus = errors.New("unexpected response status")

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
	Field      string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("API request failed with status %d: %s (field %s)", e.StatusCode, e.Message, e.Field)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return ErrStatus }

// APIClient handles buildmyhome API interactions
type APIClient struct {
	base       string
	httpClient *http.Client
}

// New creates a client for the API rooted at base (e.g. http://localhost:8080/api/v1).
// A zero timeout leaves request deadlines to the caller's context.
func New(base string, timeout time.Duration) *APIClient {
	return &APIClient{
		base:       strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Estimate asks the server to price cfg
func (c *APIClient) Estimate(ctx context.Context, cfg model.HomeConfiguration) (int64, error) {
	var out struct {
		EstimatedCostRupees *int64 `json:"estimatedCostRupees"`
	}
	if err := c.do(ctx, http.MethodPost, "/calculate-cost", cfg, &out); err != nil {
		return 0, err
	}
	if out.EstimatedCostRupees == nil {
		return 0, fmt.Errorf("malformed estimate response: missing estimatedCostRupees")
	}
	return *out.EstimatedCostRupees, nil
}

// SubmitInquiry sends a lead and returns the stored record
func (c *APIClient) SubmitInquiry(ctx context.Context, req model.InquiryRequest) (*model.Inquiry, error) {
	var out model.Inquiry
	if err := c.do(ctx, http.MethodPost, "/inquiries", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSavedPlan stores a plan under the session id
func (c *APIClient) CreateSavedPlan(ctx context.Context, req model.SavedPlanRequest) (*model.SavedPlan, error) {
	var out model.SavedPlan
	if err := c.do(ctx, http.MethodPost, "/saved-plans", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSavedPlan removes a server-side saved plan
func (c *APIClient) DeleteSavedPlan(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/saved-plans/"+strconv.FormatInt(id, 10), nil, nil)
}

// ListSavedPlans returns the server-side plans for a session
func (c *APIClient) ListSavedPlans(ctx context.Context, sessionID string) ([]model.SavedPlan, error) {
	var out []model.SavedPlan
	if err := c.do(ctx, http.MethodGet, "/saved-plans/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPackages returns stock packages matching the filters
func (c *APIClient) ListPackages(ctx context.Context, filters model.PackageFilters) ([]model.Package, error) {
	q := url.Values{}
	for k, v := range map[string]string{
		"size":   filters.Size,
		"bhk":    filters.BHK,
		"style":  filters.Style,
		"budget": filters.Budget,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}

	path := "/packages"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []model.Package
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SimilarPackages returns stock packages close to cfg
func (c *APIClient) SimilarPackages(ctx context.Context, cfg model.HomeConfiguration, limit int) ([]model.Package, error) {
	path := "/packages/similar"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []model.Package
	if err := c.do(ctx, http.MethodPost, path, cfg, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMaterials returns materials in a category, optionally matching q
func (c *APIClient) ListMaterials(ctx context.Context, filters model.MaterialFilters) ([]model.Material, error) {
	q := url.Values{}
	if filters.Category != "" {
		q.Set("category", filters.Category)
	}
	if filters.Query != "" {
		q.Set("q", filters.Query)
	}

	path := "/materials"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []model.Material
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do sends a JSON request and decodes a JSON response into out when out is non-nil
func (c *APIClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		reqBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(reqBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var er model.ErrorResponse
		if json.Unmarshal(respBody, &er) == nil && er.Error != "" {
			apiErr.Message = er.Error
			apiErr.Field = er.Field
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
