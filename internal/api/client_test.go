package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/consumer/products", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"products":[]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestLogger())
	resp := c.Get(context.Background(), "/consumer/products")

	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "OK", resp.StatusText)
	assert.False(t, resp.AuthRequired)
	assert.False(t, resp.Fallback())

	var body map[string]any
	require.NoError(t, resp.JSON(&body))
	assert.Contains(t, body, "products")
}

func TestPost_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestLogger())
	resp := c.Post(context.Background(), "/login", map[string]string{"email": "a@b.com"})

	assert.True(t, resp.OK)
}

func TestUnreachableBackend_SynthesizesFallback(t *testing.T) {
	// A server that is already closed guarantees a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, newTestLogger())
	resp := c.Get(context.Background(), "/consumer/products")

	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
	assert.Equal(t, "Service Unavailable", resp.StatusText)
	assert.True(t, resp.Fallback())
	assert.False(t, resp.AuthRequired)

	text, err := resp.Text()
	require.NoError(t, err)
	assert.Equal(t, `{"error":"Backend not available","fallback":true}`, text)

	var body struct {
		Error    string `json:"error"`
		Fallback bool   `json:"fallback"`
	}
	require.NoError(t, resp.JSON(&body))
	assert.Equal(t, "Backend not available", body.Error)
	assert.True(t, body.Fallback)
}

func TestUnauthorized_SetsAuthRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"session expired"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestLogger())
	resp := c.Get(context.Background(), "/getuserdata")

	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.True(t, resp.AuthRequired)
	assert.False(t, resp.Fallback())
}

func TestHTTPError_NotFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestLogger())
	resp := c.Post(context.Background(), "/register", map[string]string{})

	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.False(t, resp.Fallback())
	assert.False(t, resp.AuthRequired)
}

func TestBodyReaders_MemoizedAndReusable(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, `{"n":1}`)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestLogger())
	resp := c.Get(context.Background(), "/x")

	// Text then JSON then Text again: one wire read, identical results.
	text1, err := resp.Text()
	require.NoError(t, err)

	var body map[string]int
	require.NoError(t, resp.JSON(&body))
	assert.Equal(t, 1, body["n"])

	text2, err := resp.Text()
	require.NoError(t, err)
	assert.Equal(t, text1, text2)
	assert.Equal(t, 1, hits)
}

func TestJSON_InvalidPayloadErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<!doctype html><html>oops</html>`)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestLogger())
	resp := c.Get(context.Background(), "/x")

	assert.True(t, resp.OK)
	var body map[string]any
	assert.Error(t, resp.JSON(&body))

	// Text still works on the same payload.
	text, err := resp.Text()
	require.NoError(t, err)
	assert.Contains(t, text, "oops")
}

func TestCookies_PersistAcrossCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "tok-1", Path: "/"})
			w.WriteHeader(http.StatusOK)
		case "/getuserdata":
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value != "tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, newTestLogger())
	ctx := context.Background()

	login := c.Post(ctx, "/login", map[string]string{"email": "a@b.com"})
	require.True(t, login.OK)

	me := c.Get(ctx, "/getuserdata")
	assert.True(t, me.OK)
	assert.False(t, me.AuthRequired)
}

func TestDo_ExtraHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "1", r.Header.Get("X-Client-Version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestLogger())
	resp := c.Do(context.Background(), http.MethodPatch, "/x",
		map[string]string{"k": "v"}, http.Header{"X-Client-Version": []string{"1"}})

	assert.True(t, resp.OK)
}

func TestPostForm_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Tee", r.FormValue("productName"))

		f, header, err := r.FormFile("productImage")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "tee.png", header.Filename)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestLogger())
	resp := c.PostForm(context.Background(), "/seller/addproduct",
		map[string]string{"productName": "Tee"},
		FormFile{Field: "productImage", Name: "tee.png", Content: []byte("png-bytes")},
	)

	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusCreated, resp.Status)
}
