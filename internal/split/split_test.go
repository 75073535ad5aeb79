// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperfeed/internal/testutil"
	"github.com/pdiddy/paperfeed/pkg/types"
)

func TestStem(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain", "doc.pdf", "doc"},
		{"with directory", "/tmp/in/scan-042.pdf", "scan-042"},
		{"uppercase extension", "REPORT.PDF", "REPORT"},
		{"dots in stem", "2024.q1.report.pdf", "2024.q1.report"},
		{"no extension", "plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.path))
		})
	}
}

func TestPageFilename(t *testing.T) {
	assert.Equal(t, "doc_1.pdf", PageFilename("/in/doc.pdf", 1))
	assert.Equal(t, "doc_12.pdf", PageFilename("doc.pdf", 12))
}

func TestDocument_ThreePages(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(inDir, "doc.pdf")
	testutil.WriteSamplePDF(t, src, 3)

	artifacts, err := Document(src, outDir)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	for i, artifact := range artifacts {
		assert.Equal(t, i+1, artifact.Index)
		assert.Equal(t, PageFilename(src, i+1), artifact.Filename)

		info, err := os.Stat(artifact.Path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	assert.FileExists(t, filepath.Join(outDir, "doc_1.pdf"))
	assert.FileExists(t, filepath.Join(outDir, "doc_2.pdf"))
	assert.FileExists(t, filepath.Join(outDir, "doc_3.pdf"))
}

func TestDocument_SinglePage(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(inDir, "single.pdf")
	testutil.WriteSamplePDF(t, src, 1)

	artifacts, err := Document(src, outDir)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "single_1.pdf", artifacts[0].Filename)
}

func TestDocument_CorruptPDF(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(inDir, "broken.pdf")
	testutil.WriteCorruptPDF(t, src)

	_, err := Document(src, outDir)
	require.Error(t, err)

	var readErr *types.ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, src, readErr.Path)
}

func TestDocument_MissingFile(t *testing.T) {
	outDir := t.TempDir()

	_, err := Document(filepath.Join(t.TempDir(), "absent.pdf"), outDir)
	require.Error(t, err)

	var readErr *types.ReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestDocument_EmptyPDF(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(inDir, "empty.pdf")
	testutil.WriteSamplePDF(t, src, 0)

	_, err := Document(src, outDir)
	require.Error(t, err)

	var readErr *types.ReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestDocument_CreatesOutputDir(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	src := filepath.Join(inDir, "doc.pdf")
	testutil.WriteSamplePDF(t, src, 2)

	artifacts, err := Document(src, outDir)
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)
	assert.DirExists(t, outDir)
}

func TestPageCount(t *testing.T) {
	inDir := t.TempDir()
	src := filepath.Join(inDir, "doc.pdf")
	testutil.WriteSamplePDF(t, src, 5)

	n, err := PageCount(src)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
