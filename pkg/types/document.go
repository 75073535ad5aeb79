// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SourceDocument is one multi-page PDF discovered in the consume folder.
type SourceDocument struct {
	// Path is the absolute or consume-relative path to the PDF.
	Path string `json:"path" yaml:"path"`

	// Name is the base filename, e.g. "doc.pdf".
	Name string `json:"name" yaml:"name"`

	// Hash is the hex-encoded SHA-256 of the file contents.
	Hash string `json:"hash" yaml:"hash"`

	// PageCount is the number of pages reported by the PDF.
	PageCount int `json:"page_count" yaml:"page_count"`
}

// PageArtifact is a single-page PDF produced by splitting a source document.
type PageArtifact struct {
	// Index is the 1-based page number within the source document.
	Index int `json:"index" yaml:"index"`

	// Filename is the base name of the page file, e.g. "doc_3.pdf".
	Filename string `json:"filename" yaml:"filename"`

	// Path is the full path of the page file in the output folder.
	Path string `json:"path" yaml:"path"`
}

// UploadResult is the outcome of submitting one page file to the API.
type UploadResult struct {
	// Filename is the base name of the uploaded file.
	Filename string `json:"filename" yaml:"filename"`

	// StatusCode is the HTTP status returned by the API, or 0 when the
	// request never completed.
	StatusCode int `json:"status_code" yaml:"status_code"`

	// Err holds the failure description for unsuccessful uploads.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`

	// UploadedAt is when the submission finished.
	UploadedAt time.Time `json:"uploaded_at" yaml:"uploaded_at"`
}

// OK reports whether the upload succeeded with a 2xx status.
func (r UploadResult) OK() bool {
	return r.Err == "" && r.StatusCode >= 200 && r.StatusCode < 300
}
