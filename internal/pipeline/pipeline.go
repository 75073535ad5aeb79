// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the split-rename-upload sequence over a consume
// folder. Each source PDF is processed fully before the next begins;
// per-file and per-page failures are logged and the run continues.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/paperfeed/internal/ledger"
	"github.com/pdiddy/paperfeed/internal/split"
	"github.com/pdiddy/paperfeed/internal/upload"
	"github.com/pdiddy/paperfeed/pkg/types"
)

// placeholderPath is the template value shipped in example .env files.
// Finding it in configuration means the user never filled theirs in.
const placeholderPath = "C:/path/to/"

// Runner executes pipeline runs over the configured folders.
type Runner struct {
	cfg    types.PipelineConfig
	client *upload.Client
	store  *ledger.Store
	debug  io.Writer
}

// NewRunner builds a Runner. client may be nil when cfg.Upload is false;
// store may be nil to skip history recording. debug receives verbose
// progress lines and may be nil to discard them.
func NewRunner(cfg types.PipelineConfig, client *upload.Client, store *ledger.Store, debug io.Writer) *Runner {
	if debug == nil {
		debug = io.Discard
	}
	return &Runner{cfg: cfg, client: client, store: store, debug: debug}
}

// BatchResult holds the outcome of one pipeline run.
type BatchResult struct {
	Processed     int
	Failed        int
	PagesWritten  int
	PagesUploaded int
	PagesFailed   int
}

// Total returns the number of source documents handled.
func (r BatchResult) Total() int {
	return r.Processed + r.Failed
}

// HasFailures reports whether any document or page upload failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0 || r.PagesFailed > 0
}

// ValidateDir rejects placeholder paths and creates dir when missing.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory not configured")
	}
	if strings.Contains(dir, placeholderPath) {
		return fmt.Errorf("placeholder path detected in %q: update the consume and output folders", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// CleanOutput removes existing regular files from dir so a fresh run
// does not collide with leftovers from a previous one. Individual
// deletion failures produce a warning and the cleanup continues.
func CleanOutput(dir string, w io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading output directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}

	fmt.Fprintf(w, "Removing %d existing files.\n", len(files))
	for _, name := range files {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			fmt.Fprintf(w, "warning: could not remove %s: %v\n", name, err)
		}
	}
	return nil
}

// listPDFs returns the PDF filenames in dir, sorted by name. The
// extension match is case-insensitive.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading consume directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// fileHash returns the hex SHA-256 of the file contents.
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Run executes one pipeline pass: validate folders, clean the output
// folder, then split and upload every PDF in the consume folder in
// name order. Per-file status goes to w.
func (r *Runner) Run(ctx context.Context, w io.Writer) (BatchResult, error) {
	for _, dir := range []string{r.cfg.Folders.ConsumeDir, r.cfg.Folders.OutputDir} {
		if err := ValidateDir(dir); err != nil {
			return BatchResult{}, err
		}
	}

	if err := CleanOutput(r.cfg.Folders.OutputDir, w); err != nil {
		return BatchResult{}, err
	}

	names, err := listPDFs(r.cfg.Folders.ConsumeDir)
	if err != nil {
		return BatchResult{}, err
	}
	if len(names) == 0 {
		fmt.Fprintln(w, "No PDF files found in the consume folder.")
		return BatchResult{}, nil
	}

	var result BatchResult
	scanSeq := 1
	for i, name := range names {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		fmt.Fprintf(w, "Processing file %d/%d: %s\n", i+1, len(names), name)
		if err := r.processFile(ctx, name, &scanSeq, &result, w); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		result.Processed++
	}

	fmt.Fprintf(w, "\nRun summary: %d processed, %d failed (total: %d); %d pages written, %d uploaded, %d upload failures\n",
		result.Processed, result.Failed, result.Total(),
		result.PagesWritten, result.PagesUploaded, result.PagesFailed)
	return result, nil
}

// processFile splits one source PDF into the output folder, optionally
// applies scan renaming, uploads every page in order, and records the
// outcome in the ledger. A page upload failure is counted but does not
// stop the remaining pages.
func (r *Runner) processFile(ctx context.Context, name string, scanSeq *int, result *BatchResult, w io.Writer) error {
	path := filepath.Join(r.cfg.Folders.ConsumeDir, name)

	hash, err := fileHash(path)
	if err != nil {
		return &types.ReadError{Path: path, Err: err}
	}

	artifacts, err := split.Document(path, r.cfg.Folders.OutputDir)
	if err != nil {
		return err
	}
	result.PagesWritten += len(artifacts)
	fmt.Fprintf(r.debug, "split %s into %d pages\n", name, len(artifacts))

	if r.cfg.ScanRename {
		renameArtifacts(artifacts, scanSeq, time.Now(), r.debug)
	}

	doc := types.SourceDocument{
		Path:      path,
		Name:      name,
		Hash:      hash,
		PageCount: len(artifacts),
	}

	var docID int64
	if r.store != nil {
		docID, err = r.store.RecordDocument(ctx, doc)
		if err != nil {
			// Ledger trouble must not block uploads; stop writing to it
			// for the rest of the run.
			fmt.Fprintf(w, "warning: ledger write failed for %s: %v\n", name, err)
			r.store = nil
		}
	}

	if !r.cfg.Upload || r.client == nil {
		return nil
	}

	for _, artifact := range artifacts {
		res, uploadErr := r.client.UploadFile(ctx, artifact.Path)
		if uploadErr != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", artifact.Filename, uploadErr)
			result.PagesFailed++
		} else {
			fmt.Fprintf(r.debug, "uploaded %s\n", artifact.Filename)
			result.PagesUploaded++
		}
		if r.store != nil {
			if err := r.store.RecordUpload(ctx, docID, res); err != nil {
				fmt.Fprintf(w, "warning: ledger write failed for %s: %v\n", artifact.Filename, err)
			}
		}
	}
	return nil
}
