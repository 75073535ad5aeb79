// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ReadError indicates a source PDF could not be opened or parsed,
// including PDFs that parse but contain no pages.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError indicates page files could not be written to the output folder.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// UploadError indicates an upload failed, either at the network level
// (StatusCode 0) or with a non-2xx API response.
type UploadError struct {
	Filename   string
	StatusCode int
	Err        error
}

func (e *UploadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("uploading %s: HTTP %d: %v", e.Filename, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("uploading %s: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
