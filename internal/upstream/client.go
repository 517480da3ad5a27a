// Package upstream is the REST client for the remote ordering backend. The
// backend owns users, meals and all durable order data; this service only
// consumes the order endpoints and forwards the caller's bearer token.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yankhoury/homeplate/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type tokenContextKey struct{}

// WithToken stashes the caller's raw bearer token so every upstream call in
// this request is made on the caller's behalf.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenContextKey{}).(string); ok {
		return token
	}

	return ""
}

// Client defines the backend operations the order tracker consumes.
type Client interface {
	CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) (*models.RawOrder, error)
	MyOrders(ctx context.Context) ([]models.RawOrder, error)
	CancelOrder(ctx context.Context, orderID string) error
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// UpstreamError carries the backend's own message when it reported one, so
// the caller can show it instead of a generic failure.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// envelope shapes: the backend wraps payloads either as {data:{order}} or
// {order} depending on the endpoint version, and errors as {message} or
// {error}.
type orderEnvelope struct {
	Data *struct {
		Order *models.RawOrder `json:"order"`
	} `json:"data"`
	Order *models.RawOrder `json:"order"`
}

func (e orderEnvelope) order() *models.RawOrder {
	if e.Data != nil && e.Data.Order != nil {
		return e.Data.Order
	}

	return e.Order
}

type ordersEnvelope struct {
	Data *struct {
		Orders []models.RawOrder `json:"orders"`
	} `json:"data"`
	Orders []models.RawOrder `json:"orders"`
}

func (e ordersEnvelope) orders() []models.RawOrder {
	if e.Data != nil && e.Data.Orders != nil {
		return e.Data.Orders
	}

	return e.Orders
}

type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *httpClient) CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) (*models.RawOrder, error) {
	body, err := c.do(ctx, http.MethodPost, "/orders", payload)
	if err != nil {
		return nil, err
	}

	var env orderEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode create-order response: %w", err)
	}

	order := env.order()
	if order == nil {
		return nil, fmt.Errorf("backend did not return the created order")
	}

	return order, nil
}

func (c *httpClient) MyOrders(ctx context.Context) ([]models.RawOrder, error) {
	body, err := c.do(ctx, http.MethodGet, "/orders/mine", nil)
	if err != nil {
		return nil, err
	}

	var env ordersEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode orders response: %w", err)
	}

	return env.orders(), nil
}

func (c *httpClient) CancelOrder(ctx context.Context, orderID string) error {
	// acknowledgement only; the tracker flips the local status itself
	_, err := c.do(ctx, http.MethodPatch, "/orders/"+orderID+"/cancel", nil)

	return err
}

func (c *httpClient) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	payload := map[string]string{"status": string(status)}
	_, err := c.do(ctx, http.MethodPatch, "/orders/"+orderID+"/status", payload)

	return err
}

func (c *httpClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")

	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to backend failed: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		_ = json.Unmarshal(body, &env)

		message := env.Message
		if message == "" {
			message = env.Error
		}

		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: message}
	}

	return body, nil
}
