// Package api is the typed boundary to the AgriLearn content API.
// Every response is decoded into an explicit schema here; nothing
// downstream touches raw payload fields.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrilearn/agrilearn/internal/config"
	"github.com/agrilearn/agrilearn/internal/logging"
	"github.com/agrilearn/agrilearn/internal/validation"
)

// TokenSource supplies the bearer token for authenticated calls. The
// session object satisfies it.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
	retries   int
	tokens    TokenSource
}

// NewClient validates the configured base URL and builds a client.
// tokens may be nil for a purely anonymous client.
func NewClient(cfg *config.Config, tokens TokenSource) (*Client, error) {
	validator := validation.NewServiceURLValidator()
	if cfg.API.AllowLocalhost {
		validator = validation.NewPermissiveServiceURLValidator()
	}

	baseURL, err := validator.ValidateAndNormalize(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.API.UserAgent,
		retries:   cfg.API.RetryAttempts,
		tokens:    tokens,
	}, nil
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do issues the request, retrying transport failures at most c.retries
// times. HTTP error statuses are never retried; they are mapped to
// typed errors for the screen boundary to surface once.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	var resp *http.Response
	var err error
	for attempt := 0; ; attempt++ {
		resp, err = c.client.Do(req)
		if err == nil {
			break
		}
		if attempt >= c.retries || req.Context().Err() != nil {
			return nil, fmt.Errorf("calling content API: %w", err)
		}
		if req.Body != nil {
			if req.GetBody == nil {
				return nil, fmt.Errorf("calling content API: %w", err)
			}
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("calling content API: %w", err)
			}
			req.Body = body
		}
		logging.Logger.Warn("retrying API request",
			zap.String("url", req.URL.String()),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}

	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) putJSON(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, payload, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// FilePart attaches an upload (article image, etc.) to a multipart
// form submission.
type FilePart struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// FileFromPath builds a FilePart for the "image" form field from a
// file on disk. The caller owns the part for the duration of the
// request; the underlying file is read once.
func FileFromPath(path string) (*FilePart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	return &FilePart{
		Field:    "image",
		Filename: filepath.Base(path),
		Reader:   bytes.NewReader(data),
	}, nil
}

// sendMultipart submits create/update forms the way the web client
// does: multipart fields plus an optional file part, bearer token in
// the Authorization header.
func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, file *FilePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("writing form field: %w", err)
		}
	}

	if file != nil && file.Reader != nil {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("creating form file: %w", err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return fmt.Errorf("copying upload: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
