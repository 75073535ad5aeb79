// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split turns a multi-page PDF into one single-page file per page.
// Page files are named <stem>_<n>.pdf with a 1-based page number, so a
// three-page doc.pdf becomes doc_1.pdf, doc_2.pdf, doc_3.pdf.
package split

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/paperfeed/pkg/types"
)

// relaxedConf returns a pdfcpu configuration that tolerates the mildly
// out-of-spec PDFs office scanners tend to produce.
func relaxedConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Stem returns the filename without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PageFilename returns the output name for page n of the given source file.
func PageFilename(sourcePath string, n int) string {
	return fmt.Sprintf("%s_%d.pdf", Stem(sourcePath), n)
}

// Document splits the PDF at path into single-page files under outDir and
// returns one PageArtifact per page, ordered by page number.
//
// A corrupt, unreadable, or empty PDF yields a *types.ReadError; an
// unwritable output directory or a failed page write yields a
// *types.WriteError. The source file is never modified.
func Document(path, outDir string) ([]types.PageArtifact, error) {
	conf := relaxedConf()

	if err := api.ValidateFile(path, conf); err != nil {
		return nil, &types.ReadError{Path: path, Err: err}
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, &types.ReadError{Path: path, Err: err}
	}
	if pageCount == 0 {
		return nil, &types.ReadError{Path: path, Err: fmt.Errorf("PDF has no pages")}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, &types.WriteError{Path: outDir, Err: err}
	}

	// SplitFile with span 1 writes <stem>_<n>.pdf for every page.
	if err := api.SplitFile(path, outDir, 1, conf); err != nil {
		return nil, &types.WriteError{Path: outDir, Err: err}
	}

	artifacts := make([]types.PageArtifact, 0, pageCount)
	for n := 1; n <= pageCount; n++ {
		name := PageFilename(path, n)
		pagePath := filepath.Join(outDir, name)
		if _, err := os.Stat(pagePath); err != nil {
			return nil, &types.WriteError{Path: pagePath, Err: err}
		}
		artifacts = append(artifacts, types.PageArtifact{
			Index:    n,
			Filename: name,
			Path:     pagePath,
		})
	}
	return artifacts, nil
}

// PageCount reports the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, &types.ReadError{Path: path, Err: err}
	}
	return n, nil
}
