// Package hsn looks up GST tax rates for HSN codes from the external
// e-waybill rate service. The transition engine never calls this; the CLI
// uses it to populate Product.hsnDetails.
package hsn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public rate lookup endpoint.
const DefaultBaseURL = "https://docs.ewaybillgst.gov.in/apidocs/version1.03"

// Details is the rate lookup result for one HSN code.
type Details struct {
	HSNCode     string  `json:"hsncode"`
	SGSTRate    float64 `json:"sgstrate"`
	CGSTRate    float64 `json:"cgstrate"`
	IGSTRate    float64 `json:"igstrate"`
	CESSRate    float64 `json:"cessrate,omitempty"`
	Description string  `json:"description,omitempty"`
}

// response is the service's envelope.
type response struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Data    *Details `json:"data,omitempty"`
}

// LookupError is a failed rate lookup: transport failure, non-200 HTTP
// status, or a service-level error message.
type LookupError struct {
	Code    string // HSN code queried
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hsn lookup %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("hsn lookup %s: %s", e.Code, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Client queries the HSN rate service.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the service endpoint (tests point this at a local
// httptest server).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithTimeout overrides the request timeout (default 10s).
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// NewClient creates a lookup client against the default endpoint.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the tax rates for an HSN code.
func (c *Client) Lookup(ctx context.Context, code string) (Details, error) {
	u := fmt.Sprintf("%s/get-hsn-details?%s", c.baseURL, url.Values{"hsncode": {code}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Details{}, &LookupError{Code: code, Message: "build request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Details{}, &LookupError{Code: code, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Details{}, &LookupError{Code: code, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Details{}, &LookupError{Code: code, Message: "decode response", Err: err}
	}
	if body.Data == nil {
		msg := body.Message
		if msg == "" {
			msg = "no rate data returned"
		}
		return Details{}, &LookupError{Code: code, Message: msg}
	}
	return *body.Data, nil
}
