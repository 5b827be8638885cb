// Package sqlite provides a SQLite-backed implementation of the
// storage.SnapshotStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/biblio/internal/models"
	"github.com/mmynk/biblio/internal/storage"
)

// Ensure SQLiteStore implements storage.SnapshotStore
var _ storage.SnapshotStore = (*SQLiteStore)(nil)

// SQLiteStore implements storage.SnapshotStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces the stored snapshot in a single transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO library (id, name, taken_at) VALUES (1, ?, ?)",
		snap.Library, snap.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert library: %w", err)
	}

	for i, a := range snap.Authors {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO authors (email, first_name, last_name, position) VALUES (?, ?, ?, ?)",
			a.Email, a.FirstName, a.LastName, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert author: %w", err)
		}
	}

	for i, m := range snap.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO members (email, first_name, last_name, status, position) VALUES (?, ?, ?, ?, ?)",
			m.Email, m.FirstName, m.LastName, string(m.Status), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	for i, d := range snap.Documents {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO documents (isbn, kind, title, author_email, position) VALUES (?, ?, ?, ?, ?)",
			d.ISBN, d.Kind, d.Title, d.AuthorEmail, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert document: %w", err)
		}
	}

	for i, e := range snap.Equipment {
		var brand, osName interface{}
		if e.Brand != "" {
			brand = e.Brand
		}
		if e.OS != "" {
			osName = string(e.OS)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO equipment (id, kind, brand, os, position) VALUES (?, ?, ?, ?, ?)",
			e.ID, e.Kind, brand, osName, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert equipment: %w", err)
		}
	}

	for i, l := range snap.Loans {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO loans (id, member_email, item_key, since, position) VALUES (?, ?, ?, ?, ?)",
			l.ID, l.MemberEmail, l.ItemKey, l.Since, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert loan: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LoadSnapshot reads back the stored snapshot, preserving the saved order.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	err := s.db.QueryRowContext(ctx,
		"SELECT name, taken_at FROM library WHERE id = 1",
	).Scan(&snap.Library, &snap.TakenAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library: %w", err)
	}

	if snap.Authors, err = s.loadAuthors(ctx); err != nil {
		return nil, err
	}
	if snap.Members, err = s.loadMembers(ctx); err != nil {
		return nil, err
	}
	if snap.Documents, err = s.loadDocuments(ctx); err != nil {
		return nil, err
	}
	if snap.Equipment, err = s.loadEquipment(ctx); err != nil {
		return nil, err
	}
	if snap.Loans, err = s.loadLoans(ctx); err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *SQLiteStore) loadAuthors(ctx context.Context) ([]models.PersonRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT email, first_name, last_name FROM authors ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get authors: %w", err)
	}
	defer rows.Close()

	var out []models.PersonRecord
	for rows.Next() {
		var p models.PersonRecord
		if err := rows.Scan(&p.Email, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context) ([]models.MemberRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT email, first_name, last_name, status FROM members ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var out []models.MemberRecord
	for rows.Next() {
		var m models.MemberRecord
		var status string
		if err := rows.Scan(&m.Email, &m.FirstName, &m.LastName, &status); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Status = models.Status(status)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) loadDocuments(ctx context.Context) ([]models.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT isbn, kind, title, author_email FROM documents ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	defer rows.Close()

	var out []models.DocumentRecord
	for rows.Next() {
		var d models.DocumentRecord
		if err := rows.Scan(&d.ISBN, &d.Kind, &d.Title, &d.AuthorEmail); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) loadEquipment(ctx context.Context) ([]models.EquipmentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, kind, brand, os FROM equipment ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	defer rows.Close()

	var out []models.EquipmentRecord
	for rows.Next() {
		var e models.EquipmentRecord
		var brand, osName sql.NullString
		if err := rows.Scan(&e.ID, &e.Kind, &brand, &osName); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		if brand.Valid {
			e.Brand = brand.String
		}
		if osName.Valid {
			e.OS = models.OS(osName.String)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate equipment: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) loadLoans(ctx context.Context) ([]models.LoanRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, member_email, item_key, since FROM loans ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get loans: %w", err)
	}
	defer rows.Close()

	var out []models.LoanRecord
	for rows.Next() {
		var l models.LoanRecord
		if err := rows.Scan(&l.ID, &l.MemberEmail, &l.ItemKey, &l.Since); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}
	return out, nil
}
