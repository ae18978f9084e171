package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed response is kept in an APIError.
const maxErrorBody = 4096

// APIError is a non-2xx response from the Langfuse public API.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("langfuse %s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("langfuse %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// api is the authenticated JSON transport shared by the ingestion client and
// the prompt loader.
type api struct {
	baseURL   *url.URL
	publicKey string
	secretKey string
	http      *http.Client
}

// newAPI returns nil when any credential is missing.
func newAPI(baseURL, publicKey, secretKey string, timeout time.Duration) (*api, error) {
	if baseURL == "" || publicKey == "" || secretKey == "" {
		return nil, nil
	}
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid langfuse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid langfuse base URL %q", baseURL)
	}
	return &api{
		baseURL:   parsed,
		publicKey: publicKey,
		secretKey: secretKey,
		http:      &http.Client{Timeout: timeout},
	}, nil
}

// do sends in as JSON (when non-nil) and decodes the response into out (when non-nil).
func (a *api) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := *a.baseURL
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + path
	endpoint.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal langfuse request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("create langfuse request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(a.publicKey, a.secretKey)

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("langfuse %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode langfuse response: %w", err)
	}
	return nil
}
