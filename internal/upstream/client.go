package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"doorsteps/internal/pkg/metrics"
)

// TokenSource yields the current access token, empty when logged out.
type TokenSource func() string

// Client is the typed boundary to the Doorsteps backend API. All
// responses use the {success,data}|{success,error} envelope.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, token TokenSource, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		token:   token,
		log:     log,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindUnknown, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, path, "network_error").Inc()
		return &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &Error{Kind: KindUnknown, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 400 || !env.Success {
		e := &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode}
		if env.Error != nil {
			e.Code = env.Error.Code
			e.Message = env.Error.Message
		}
		c.log.Debug("upstream call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", e.Kind.String()))
		return e
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Kind: KindUnknown, Status: resp.StatusCode, Err: err}
		}
	}
	return nil
}

// doRaw fetches a non-JSON payload (receipt downloads).
func (c *Client) doRaw(ctx context.Context, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", &Error{Kind: KindUnknown, Err: err}
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, "", &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Kind: KindNetwork, Status: resp.StatusCode, Err: err}
	}
	return raw, resp.Header.Get("Content-Type"), nil
}
