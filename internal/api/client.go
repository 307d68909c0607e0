package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client is the one HTTP surface the UI talks to. Every panel fetch and user
// action goes through here; the client does no caching and no retries, so a
// failed call is terminal for that attempt.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	session string
}

// StatusError is a non-2xx response, body truncated for display.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
		session: uuid.NewString(),
	}
}

// SessionID identifies this client run in request headers and log lines.
func (c *Client) SessionID() string { return c.session }

func (c *Client) KPIs(ctx context.Context) (KPISnapshot, error) {
	var out KPISnapshot
	err := c.getJSON(ctx, "/api/admin/kpis", nil, &out)
	return out, err
}

func (c *Client) Warnings(ctx context.Context) ([]string, error) {
	var out warningsResp
	if err := c.getJSON(ctx, "/api/admin/warnings", nil, &out); err != nil {
		return nil, err
	}
	return out.Warnings, nil
}

func (c *Client) SalesTrend(ctx context.Context) ([]SalesPoint, error) {
	var out salesTrendResp
	if err := c.getJSON(ctx, "/api/admin/sales_trend", nil, &out); err != nil {
		return nil, err
	}
	return out.SalesTrend, nil
}

func (c *Client) NegativeReviews(ctx context.Context) ([]NegativeReview, error) {
	var out negativeReviewsResp
	if err := c.getJSON(ctx, "/api/admin/negative_reviews", nil, &out); err != nil {
		return nil, err
	}
	return out.NegativeReviews, nil
}

func (c *Client) CustomersBySegment(ctx context.Context, segment string) ([]Customer, error) {
	q := url.Values{"segment": {segment}}
	var out customersResp
	if err := c.getJSON(ctx, "/api/admin/customers_by_segment", q, &out); err != nil {
		return nil, err
	}
	return out.Customers, nil
}

func (c *Client) Inquiries(ctx context.Context, status string) ([]Inquiry, error) {
	q := url.Values{"status": {status}}
	var out inquiriesResp
	if err := c.getJSON(ctx, "/api/inquiries", q, &out); err != nil {
		return nil, err
	}
	return out.Inquiries, nil
}

func (c *Client) Suggestion(ctx context.Context, questionText string) (string, error) {
	q := url.Values{"question": {questionText}}
	var out suggestionResp
	if err := c.getJSON(ctx, "/api/suggestion", q, &out); err != nil {
		return "", err
	}
	return out.Suggestion, nil
}

func (c *Client) ApproveReviewReply(ctx context.Context, reviewID, approvedReply string) error {
	body := map[string]any{
		"review_id":      reviewID,
		"approved_reply": approvedReply,
	}
	return c.postJSON(ctx, "/api/admin/approve_review_reply", body, nil)
}

// SendCoupon broadcasts one coupon to every listed customer in a single
// call. The endpoint is treated as atomic; there is no partial-success
// contract, so the caller keeps its state untouched on any error.
func (c *Client) SendCoupon(ctx context.Context, customerIDs []string, couponDetails string) error {
	body := map[string]any{
		"customer_ids":   customerIDs,
		"coupon_details": couponDetails,
	}
	return c.postJSON(ctx, "/api/admin/send_coupon", body, nil)
}

func (c *Client) Chat(ctx context.Context, customerID, query string) (ChatReply, error) {
	body := map[string]any{
		"customer_id": customerID,
		"query":       query,
	}
	var out ChatReply
	err := c.postJSON(ctx, "/api/chat", body, &out)
	return out, err
}

// LegacyQuery is the older multipart chat endpoint still used by the generic
// test session.
func (c *Client) LegacyQuery(ctx context.Context, customerID, query string) (ChatReply, error) {
	fields := map[string]string{
		"customer_query": query,
		"customer_id":    customerID,
	}
	var out legacyQueryResp
	if err := c.postMultipart(ctx, "/api/query", fields, &out); err != nil {
		return ChatReply{}, err
	}
	return ChatReply{Response: out.Answer, LogID: out.LogID}, nil
}

// Feedback reports a thumbs verdict for the AI response behind logID.
// finalResolution is required by the backend when the resolution is failure;
// the UI validates that before calling.
func (c *Client) Feedback(ctx context.Context, logID, resolution, finalResolution string) error {
	fields := map[string]string{
		"log_id":              logID,
		"resolution_feedback": resolution,
	}
	if finalResolution != "" {
		fields["final_resolution"] = finalResolution
	}
	return c.postMultipart(ctx, "/api/feedback", fields, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	req.Header.Set("X-Session-ID", c.session)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("method", req.Method).Str("path", path).
			Dur("latency", time.Since(start)).Err(err).Msg("request failed")
		return fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", req.Method, path, err)
	}
	c.log.Debug().Str("method", req.Method).Str("path", path).
		Int("status", resp.StatusCode).Dur("latency", time.Since(start)).Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: truncate(string(payload), 240)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s %s: invalid response payload: %w", req.Method, path, err)
	}
	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
