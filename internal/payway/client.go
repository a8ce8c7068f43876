package payway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// ErrGatewayUnavailable covers transport failures, non-2xx answers and bodies
// that are not a JSON object.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// GatewayError carries the upstream answer for diagnostics.
type GatewayError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("payway: status %d: %v: %s", e.StatusCode, e.Err, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("payway: %v", e.Err)
	default:
		return fmt.Sprintf("payway: status %d: %s", e.StatusCode, e.Body)
	}
}

func (e *GatewayError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrGatewayUnavailable, e.Err}
	}
	return []error{ErrGatewayUnavailable}
}

// maxResponseBytes bounds how much of the gateway answer is read.
const maxResponseBytes = 1 << 20

// Client posts signed payloads to the PayWay QR endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *zap.Logger
}

// NewClient creates a gateway client. A nil httpClient uses a client without
// a timeout override; request contexts still cancel in-flight calls.
func NewClient(endpoint string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("payway endpoint cannot be empty")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{httpClient: httpClient, endpoint: endpoint, logger: logger}, nil
}

// GenerateQR submits the payload once and returns the decoded JSON answer,
// whatever status the gateway embeds in it.
func (c *Client) GenerateQR(ctx context.Context, payload Payload) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("payway: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &GatewayError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Submitting PayWay QR request",
		zap.String("tran_id", payload.TranID),
		zap.String("req_time", payload.ReqTime),
		zap.String("payment_option", payload.PaymentOption),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil || result == nil {
		if err == nil {
			err = errors.New("response is not a JSON object")
		}
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: string(raw), Err: fmt.Errorf("malformed response: %w", err)}
	}
	return result, nil
}
