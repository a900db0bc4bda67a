// Package coconet talks to an external neural harmonization service.
// The service is optional: callers are expected to fall back to local
// policies when it is unreachable.
package coconet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ErrUnavailable indicates the service could not be reached or is not
// ready. Callers treat it as a signal to degrade, not as a failure.
var ErrUnavailable = errors.New("harmonization service unavailable")

// HarmonizeRequest is the wire request for a harmonization call.
type HarmonizeRequest struct {
	Melody      []int   `json:"melody"`
	NumVoices   int     `json:"num_voices"`
	Temperature float64 `json:"temperature,omitempty"`
}

// HarmonizeResponse carries the harmony voices produced by the
// service. Voices are ordered top to bottom and each has one pitch per
// melody note.
type HarmonizeResponse struct {
	Voices [][]int `json:"voices"`
}

// Status is the service health report.
type Status struct {
	Ready bool   `json:"ready"`
	Model string `json:"model,omitempty"`
}

// Harmonizer produces harmony pitches for a melody. The HTTP client
// implements it; tests substitute fakes.
type Harmonizer interface {
	Harmonize(ctx context.Context, req HarmonizeRequest) (*HarmonizeResponse, error)
	Status(ctx context.Context) (*Status, error)
}

type ClientConfig struct {
	// Addr is the host:port of the service.
	Addr    string
	Timeout time.Duration
}

// Client is the HTTP implementation of Harmonizer.
type Client struct {
	config ClientConfig
	client *http.Client
}

var _ Harmonizer = &Client{}

func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		config: config,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 5 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   5 * time.Second,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
				DisableKeepAlives:     true,
			},
		},
	}
}

func (c *Client) url(path string) string {
	return "http://" + c.config.Addr + path
}

// Harmonize posts the melody to the service and decodes the harmony
// voices. Connection failures map to ErrUnavailable; malformed
// responses do not.
func (c *Client) Harmonize(ctx context.Context, req HarmonizeRequest) (*HarmonizeResponse, error) {
	if len(req.Melody) == 0 {
		return nil, errors.New("empty melody")
	}
	bs, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %s", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/harmonize"), bytes.NewBuffer(bs))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	out := &HarmonizeResponse{}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %s", err)
	}
	if err := validateResponse(req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Status probes the service health endpoint.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/status"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	status := &Status{}
	if err := json.Unmarshal(body, status); err != nil {
		return nil, fmt.Errorf("failed to decode status: %s", err)
	}
	return status, nil
}

func validateResponse(req HarmonizeRequest, resp *HarmonizeResponse) error {
	want := req.NumVoices - 1
	if want < 1 {
		want = 1
	}
	if len(resp.Voices) != want {
		return fmt.Errorf("service returned %d voices, want %d", len(resp.Voices), want)
	}
	for i, voice := range resp.Voices {
		if len(voice) != len(req.Melody) {
			return fmt.Errorf("voice %d has %d notes, melody has %d", i, len(voice), len(req.Melody))
		}
	}
	return nil
}
