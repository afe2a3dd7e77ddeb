package lifx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lumen/internal/constants"
	"github.com/wheelibin/lumen/internal/models"
)

var (
	ErrNoServerConfigured = errors.New("no server configured")
	ErrTimeout            = errors.New("request timed out")
	ErrTransport          = errors.New("unable to reach server")
	ErrMalformedResponse  = errors.New("malformed response")
)

type Action string

const (
	ActionToggle Action = "toggle"
	ActionOn     Action = "on"
	ActionOff    Action = "off"
)

// provides the base address of the lighting service, an empty string means none is configured
type ServerSource interface {
	Server() string
}

// Client talks to the lighting service's HTTP API
type Client struct {
	logger     *log.Logger
	server     ServerSource
	httpClient *http.Client
}

func NewClient(logger *log.Logger, server ServerSource, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}
	return &Client{
		logger:     logger,
		server:     server,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lights fetches the lights addressed by the selector
func (c *Client) Lights(ctx context.Context, selector string) (LightsResponse, error) {
	return c.do(ctx, http.MethodGet, lightsPath(selector, ""), nil)
}

// SetPower toggles or switches the addressed lights and returns their new state
func (c *Client) SetPower(ctx context.Context, selector string, action Action) (LightsResponse, error) {
	return c.do(ctx, http.MethodPut, lightsPath(selector, string(action)), nil)
}

// SetColor changes the colour of the addressed lights
func (c *Client) SetColor(ctx context.Context, selector string, color models.Color) (LightsResponse, error) {
	body, err := json.Marshal(color)
	if err != nil {
		return LightsResponse{}, fmt.Errorf("error encoding colour: %w", err)
	}
	return c.do(ctx, http.MethodPut, lightsPath(selector, "color"), body)
}

func lightsPath(selector string, action string) string {
	p := "/lights/" + url.PathEscape(selector)
	if action != "" {
		p += "/" + action
	}
	return p
}

func (c *Client) do(ctx context.Context, verb string, path string, body []byte) (LightsResponse, error) {
	responseBody, err := c.makeRequest(ctx, verb, path, body)
	if err != nil {
		return LightsResponse{}, err
	}

	resp := LightsResponse{}
	if err := json.Unmarshal(responseBody, &resp); err != nil {
		if !errors.Is(err, ErrMalformedResponse) {
			err = fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return LightsResponse{}, fmt.Errorf("error parsing response from %s: %w", path, err)
	}
	return resp, nil
}

func (c *Client) makeRequest(ctx context.Context, verb string, path string, body []byte) ([]byte, error) {

	server := strings.TrimRight(c.server.Server(), "/")
	if server == "" {
		return nil, ErrNoServerConfigured
	}

	req, err := http.NewRequestWithContext(ctx, verb, server+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request (%s %s): %w", verb, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Calling lighting service", "verb", verb, "path", path)

	// make the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Error calling lighting service", "verb", verb, "path", path, "err", err)
		if isTimeout(err) {
			return nil, fmt.Errorf("%s %s: %w", verb, path, ErrTimeout)
		}
		return nil, fmt.Errorf("%s %s: %w: %v", verb, path, ErrTransport, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%s %s: %w", verb, path, ErrTimeout)
		}
		return nil, fmt.Errorf("%s %s: %w: %v", verb, path, ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Error calling lighting service", "path", path, "status", resp.Status)
		return nil, fmt.Errorf("%s %s returned %s: %w", verb, path, resp.Status, ErrMalformedResponse)
	}

	return responseBody, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
