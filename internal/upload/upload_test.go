// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperfeed/pkg/types"
)

// received records one multipart upload seen by the test server.
type received struct {
	authorization string
	filename      string
	content       string
}

// newAPIServer returns an httptest server mimicking the consumption
// endpoint, plus the uploads it received in order. Filenames in fail
// get a 500 response.
func newAPIServer(t *testing.T, fail map[string]bool) (*httptest.Server, func() []received) {
	t.Helper()

	var mu sync.Mutex
	var uploads []received

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost || r.URL.Path != "/api/post_document/" {
			http.NotFound(w, r)
			return
		}

		file, header, err := r.FormFile("document")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)

		mu.Lock()
		uploads = append(uploads, received{
			authorization: r.Header.Get("Authorization"),
			filename:      header.Filename,
			content:       string(content),
		})
		mu.Unlock()

		if fail[header.Filename] {
			http.Error(w, "consumption failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"task_id": "abc"}`)
	}))
	t.Cleanup(ts.Close)

	return ts, func() []received {
		mu.Lock()
		defer mu.Unlock()
		return append([]received(nil), uploads...)
	}
}

func testClient(ts *httptest.Server) *Client {
	return New(types.APIConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "paperfeed/test",
		},
		BaseURL: ts.URL + "/api/",
		Token:   "test-token",
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUploadFile_Success(t *testing.T) {
	ts, got := newAPIServer(t, nil)
	client := testClient(ts)

	path := writeFile(t, t.TempDir(), "doc_1.pdf", "%PDF-1.4 page one")

	result, err := client.UploadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "doc_1.pdf", result.Filename)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.True(t, result.OK())
	assert.Empty(t, result.Err)

	uploads := got()
	require.Len(t, uploads, 1)
	assert.Equal(t, "Token test-token", uploads[0].authorization)
	assert.Equal(t, "doc_1.pdf", uploads[0].filename)
	assert.Equal(t, "%PDF-1.4 page one", uploads[0].content)
}

func TestUploadFile_ServerError(t *testing.T) {
	ts, _ := newAPIServer(t, map[string]bool{"doc_1.pdf": true})
	client := testClient(ts)

	path := writeFile(t, t.TempDir(), "doc_1.pdf", "%PDF-1.4")

	result, err := client.UploadFile(context.Background(), path)
	require.Error(t, err)

	var uploadErr *types.UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, http.StatusInternalServerError, uploadErr.StatusCode)
	assert.Equal(t, "doc_1.pdf", uploadErr.Filename)

	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	assert.False(t, result.OK())
	assert.NotEmpty(t, result.Err)
}

func TestUploadFile_MissingFile(t *testing.T) {
	ts, got := newAPIServer(t, nil)
	client := testClient(ts)

	_, err := client.UploadFile(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)

	var uploadErr *types.UploadError
	assert.True(t, errors.As(err, &uploadErr))
	assert.Empty(t, got())
}

func TestUploadFile_NetworkFailure(t *testing.T) {
	ts, _ := newAPIServer(t, nil)
	client := testClient(ts)
	ts.Close()

	path := writeFile(t, t.TempDir(), "doc_1.pdf", "%PDF-1.4")

	result, err := client.UploadFile(context.Background(), path)
	require.Error(t, err)

	var uploadErr *types.UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Zero(t, uploadErr.StatusCode)
	assert.Zero(t, result.StatusCode)
}

func TestTestConnection(t *testing.T) {
	ts, _ := newAPIServer(t, nil)

	require.NoError(t, testClient(ts).TestConnection(context.Background()))
}

func TestTestConnection_BadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := New(types.APIConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
		BaseURL:    ts.URL + "/api/",
		Token:      "wrong",
	})

	err := client.TestConnection(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestUploadDir_SortedAndContinues(t *testing.T) {
	ts, got := newAPIServer(t, map[string]bool{"doc_2.pdf": true})
	client := testClient(ts)

	dir := t.TempDir()
	// Create out of order to prove UploadDir sorts by name.
	writeFile(t, dir, "doc_3.pdf", "page three")
	writeFile(t, dir, "doc_1.pdf", "page one")
	writeFile(t, dir, "doc_2.pdf", "page two")

	var out bytes.Buffer
	result, err := client.UploadDir(context.Background(), dir, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Uploaded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())
	require.Len(t, result.Results, 3)

	uploads := got()
	require.Len(t, uploads, 3)
	assert.Equal(t, "doc_1.pdf", uploads[0].filename)
	assert.Equal(t, "doc_2.pdf", uploads[1].filename)
	assert.Equal(t, "doc_3.pdf", uploads[2].filename)

	assert.Contains(t, out.String(), "There are 3 files to be uploaded")
	assert.Contains(t, out.String(), "failed:  doc_2.pdf")
}

func TestUploadDir_SkipsSubdirectories(t *testing.T) {
	ts, got := newAPIServer(t, nil)
	client := testClient(ts)

	dir := t.TempDir()
	writeFile(t, dir, "doc_1.pdf", "page one")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".paperfeed"), 0o755))

	var out bytes.Buffer
	result, err := client.UploadDir(context.Background(), dir, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)
	assert.Len(t, got(), 1)
}

func TestUploadDir_MissingDir(t *testing.T) {
	ts, _ := newAPIServer(t, nil)
	client := testClient(ts)

	_, err := client.UploadDir(context.Background(), filepath.Join(t.TempDir(), "absent"), io.Discard)
	require.Error(t, err)
}
