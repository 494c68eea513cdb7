// Package api implements the resilient platform API client: the single
// chokepoint that turns every network outcome (success, HTTP error,
// unreachable backend) into one uniform response descriptor. Callers never
// handle transport errors; an unreachable backend surfaces as a synthesized
// 503 descriptor whose body signals fallback mode.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client performs requests against the platform API base URL. It holds a
// cookie jar so platform session cookies ride along on every call, the
// equivalent of fetch's credentials: "include".
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a platform API client. Each call is a single attempt: no
// retries, no backoff. Retry policy belongs to callers.
func New(baseURL string, logger *slog.Logger) *Client {
	jar, _ := cookiejar.New(nil)

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   30 * time.Second,
		},
		logger: logger,
	}
}

// Get performs a GET request against the given relative path.
func (c *Client) Get(ctx context.Context, path string) *Response {
	return c.request(ctx, http.MethodGet, path, nil, "")
}

// Post performs a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) *Response {
	return c.requestJSON(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) *Response {
	return c.requestJSON(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request against the given relative path.
func (c *Client) Delete(ctx context.Context, path string) *Response {
	return c.request(ctx, http.MethodDelete, path, nil, "")
}

// Do performs a request with an optional JSON body and extra headers for the
// rare endpoint that needs more than the defaults.
func (c *Client) Do(ctx context.Context, method, path string, body any, header http.Header) *Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return c.unavailable(path, err)
		}
		reader = bytes.NewReader(data)
	}
	return c.requestWithHeader(ctx, method, path, reader, "application/json", header)
}

// FormFile is one file part of a multipart request.
type FormFile struct {
	Field   string
	Name    string
	Content []byte
}

// PostForm performs a multipart POST. The multipart content type (with its
// boundary) replaces the default JSON content type.
func (c *Client) PostForm(ctx context.Context, path string, fields map[string]string, files ...FormFile) *Response {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return c.unavailable(path, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return c.unavailable(path, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return c.unavailable(path, err)
		}
	}
	if err := w.Close(); err != nil {
		return c.unavailable(path, err)
	}

	return c.request(ctx, http.MethodPost, path, &buf, w.FormDataContentType())
}

func (c *Client) requestJSON(ctx context.Context, method, path string, body any) *Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return c.unavailable(path, err)
		}
		reader = bytes.NewReader(data)
	}
	return c.request(ctx, method, path, reader, "application/json")
}

// request performs a single attempt and never returns an error: transport
// failure is normalized into a synthesized 503 descriptor so every caller
// uses one code path for "the server said no" and "the server is gone".
func (c *Client) request(ctx context.Context, method, path string, body io.Reader, contentType string) *Response {
	return c.requestWithHeader(ctx, method, path, body, contentType, nil)
}

func (c *Client) requestWithHeader(ctx context.Context, method, path string, body io.Reader, contentType string, header http.Header) *Response {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return c.unavailable(path, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	} else if method != http.MethodGet && method != http.MethodDelete {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.unavailable(path, err)
	}

	return &Response{
		OK:           resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:       resp.StatusCode,
		StatusText:   http.StatusText(resp.StatusCode),
		AuthRequired: resp.StatusCode == http.StatusUnauthorized,
		body:         resp.Body,
	}
}

func (c *Client) unavailable(path string, err error) *Response {
	c.logger.Warn("platform API request failed, entering fallback mode",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
	return newFallbackResponse()
}
