// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperfeed pipeline.
package types

import "time"

// HTTPConfig holds shared HTTP settings for calls to the document API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperfeed/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// APIConfig describes the document-management API endpoint.
type APIConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API root, e.g. "https://paperless.local/api/".
	// Page files are POSTed to BaseURL + "post_document/".
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Token is the credential sent as "Authorization: Token <Token>".
	// Never serialized.
	Token string `json:"-" yaml:"-"`
}

// FolderConfig holds the local directories the pipeline works over.
type FolderConfig struct {
	// ConsumeDir is the input directory polled for source PDFs.
	ConsumeDir string `json:"consume_dir" yaml:"consume_dir"`

	// OutputDir is the directory split page files are written to
	// before upload. It also hosts the history ledger under .paperfeed/.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// PipelineConfig is the full configuration for one pipeline run.
type PipelineConfig struct {
	API     APIConfig    `json:"api" yaml:"api"`
	Folders FolderConfig `json:"folders" yaml:"folders"`

	// ScanRename renames page files to the sequential
	// NN_Xerox_Scan_<dd-mm-yy>.pdf convention after splitting.
	ScanRename bool `json:"scan_rename" yaml:"scan_rename"`

	// Upload submits each page file to the API after splitting. When
	// false the run stops after writing page files to the output folder.
	Upload bool `json:"upload" yaml:"upload"`
}
