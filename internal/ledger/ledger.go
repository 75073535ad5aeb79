// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists a history of processed documents and their
// per-page upload outcomes in a local SQLite database. The ledger is a
// record for reporting, never a work queue: nothing reads it back to
// drive processing.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperfeed/pkg/types"
)

const (
	ledgerDir = ".paperfeed"
	dbFile    = "history.db"
)

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database under baseDir/.paperfeed/,
// creating the schema when missing.
func Open(baseDir string) (*Store, error) {
	dir := filepath.Join(baseDir, ledgerDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			hash TEXT NOT NULL,
			page_count INTEGER NOT NULL,
			processed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS uploads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id INTEGER NOT NULL REFERENCES documents(id),
			filename TEXT NOT NULL,
			status_code INTEGER NOT NULL,
			error TEXT,
			uploaded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_uploads_document_id ON uploads(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(hash)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordDocument inserts one processed source document and returns its
// row ID for upload records.
func (s *Store) RecordDocument(ctx context.Context, doc types.SourceDocument) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, hash, page_count, processed_at) VALUES (?, ?, ?, ?)`,
		doc.Name, doc.Hash, doc.PageCount, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("recording document %s: %w", doc.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading document row ID: %w", err)
	}
	return id, nil
}

// RecordUpload inserts one upload outcome for the given document row.
func (s *Store) RecordUpload(ctx context.Context, documentID int64, r types.UploadResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (document_id, filename, status_code, error, uploaded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		documentID, r.Filename, r.StatusCode, r.Err, r.UploadedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording upload %s: %w", r.Filename, err)
	}
	return nil
}

// DocumentRecord is one ledger entry with its upload outcomes.
type DocumentRecord struct {
	ID          int64                `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Hash        string               `json:"hash" yaml:"hash"`
	PageCount   int                  `json:"page_count" yaml:"page_count"`
	ProcessedAt string               `json:"processed_at" yaml:"processed_at"`
	Uploads     []types.UploadResult `json:"uploads,omitempty" yaml:"uploads,omitempty"`
}

// Recent returns up to limit documents, newest first, each with its
// upload rows in insertion order.
func (s *Store) Recent(ctx context.Context, limit int) ([]DocumentRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, hash, page_count, processed_at
		 FROM documents ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var records []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Hash, &rec.PageCount, &rec.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	for i := range records {
		uploads, err := s.uploadsFor(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Uploads = uploads
	}
	return records, nil
}

func (s *Store) uploadsFor(ctx context.Context, documentID int64) ([]types.UploadResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT filename, status_code, error, uploaded_at
		 FROM uploads WHERE document_id = ? ORDER BY id`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying uploads: %w", err)
	}
	defer rows.Close()

	var results []types.UploadResult
	for rows.Next() {
		var r types.UploadResult
		var errText sql.NullString
		var uploadedAt string
		if err := rows.Scan(&r.Filename, &r.StatusCode, &errText, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scanning upload row: %w", err)
		}
		r.Err = errText.String
		if t, parseErr := time.Parse(time.RFC3339, uploadedAt); parseErr == nil {
			r.UploadedAt = t
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
