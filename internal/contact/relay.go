package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RelayError reports a failed delivery. Message is the receiver's explanation, if it gave one.
type RelayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RelayError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("relay request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("relay responded %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("relay responded %d", e.StatusCode)
	}
}

// Unwrap returns the transport error, if any.
func (e *RelayError) Unwrap() error { return e.Err }

// Relay posts the form as JSON to an external form-relay endpoint.
type Relay struct {
	Endpoint string
	Client   *http.Client
}

// NewRelay makes a Relay with its own client using timeout.
func NewRelay(endpoint string, timeout time.Duration) *Relay {
	return &Relay{Endpoint: endpoint, Client: &http.Client{Timeout: timeout}}
}

type relayResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Send makes exactly one POST request. Any 2xx status is a success.
func (r *Relay) Send(ctx context.Context, v Values) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", &RelayError{Err: fmt.Errorf("marshal form: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &RelayError{Err: fmt.Errorf("make request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &RelayError{Err: err}
	}
	defer resp.Body.Close()

	var rr relayResponse
	// the body is optional, a missing or non-json body leaves rr empty
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024)); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &rr)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := rr.Message
		if msg == "" {
			msg = rr.Error
		}
		return "", &RelayError{StatusCode: resp.StatusCode, Message: msg}
	}
	return rr.Message, nil
}
