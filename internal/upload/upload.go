// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upload submits page files to a Paperless-NGX compatible
// document API as multipart form posts.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/paperfeed/internal/httputil"
	"github.com/pdiddy/paperfeed/pkg/types"
)

// postDocumentPath is the Paperless-NGX consumption endpoint, relative
// to the API base URL.
const postDocumentPath = "post_document/"

// formField is the multipart field name the API expects the file under.
const formField = "document"

// Client talks to one document API instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a Client from the API configuration. The returned client
// attaches the token header to every request.
func New(cfg types.APIConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httputil.NewClient(cfg),
	}
}

// endpoint joins the base URL and a relative API path.
func (c *Client) endpoint(rel string) string {
	return strings.TrimSuffix(c.baseURL, "/") + "/" + rel
}

// TestConnection issues a GET against the API base URL and reports an
// error unless the API answers 200.
func (c *Client) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API connection failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// UploadFile posts the file at path to the consumption endpoint. It
// returns the UploadResult for the ledger in both outcomes; the error,
// when non-nil, is a *types.UploadError.
func (c *Client) UploadFile(ctx context.Context, path string) (types.UploadResult, error) {
	name := filepath.Base(path)

	result := types.UploadResult{Filename: name, UploadedAt: time.Now().UTC()}

	f, err := os.Open(path)
	if err != nil {
		uerr := &types.UploadError{Filename: name, Err: err}
		result.Err = uerr.Error()
		return result, uerr
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(formField, name)
	if err == nil {
		_, err = io.Copy(part, f)
	}
	if err == nil {
		err = mw.Close()
	}
	if err != nil {
		uerr := &types.UploadError{Filename: name, Err: fmt.Errorf("building form: %w", err)}
		result.Err = uerr.Error()
		return result, uerr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(postDocumentPath), &body)
	if err != nil {
		uerr := &types.UploadError{Filename: name, Err: err}
		result.Err = uerr.Error()
		return result, uerr
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		uerr := &types.UploadError{Filename: name, Err: err}
		result.Err = uerr.Error()
		return result, uerr
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.UploadedAt = time.Now().UTC()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		uerr := &types.UploadError{
			Filename:   name,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(snippet))),
		}
		result.Err = uerr.Error()
		return result, uerr
	}
	return result, nil
}

// BatchResult holds the outcome of a batch upload run.
type BatchResult struct {
	Uploaded int
	Failed   int
	Results  []types.UploadResult
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Uploaded + r.Failed
}

// HasFailures reports whether any upload failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// UploadDir posts every regular file in dir, sorted by name, printing
// per-file status to w. It continues after individual failures.
func (c *Client) UploadDir(ctx context.Context, dir string, w io.Writer) (BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading output directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	fmt.Fprintf(w, "There are %d files to be uploaded\n", len(names))

	var result BatchResult
	for i, name := range names {
		fmt.Fprintf(w, "%02d/%02d uploading %s\n", i+1, len(names), name)
		res, err := c.UploadFile(ctx, filepath.Join(dir, name))
		result.Results = append(result.Results, res)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		result.Uploaded++
	}

	fmt.Fprintf(w, "\nUpload summary: %d uploaded, %d failed (total: %d)\n",
		result.Uploaded, result.Failed, result.Total())
	return result, nil
}
