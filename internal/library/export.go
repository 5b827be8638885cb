package library

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmynk/biblio/internal/export"
	"github.com/mmynk/biblio/internal/models"
	"github.com/mmynk/biblio/internal/storage"
	"github.com/mmynk/biblio/internal/storage/sqlite"
)

// Snapshot copies the current state of the library.
func (l *Library) Snapshot() *models.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := &models.Snapshot{
		Library:   l.name,
		TakenAt:   l.now().Unix(),
		Authors:   []models.PersonRecord{},
		Members:   []models.MemberRecord{},
		Documents: []models.DocumentRecord{},
		Equipment: []models.EquipmentRecord{},
		Loans:     []models.LoanRecord{},
	}
	for _, a := range l.reg.Authors() {
		snap.Authors = append(snap.Authors, models.RecordOfPerson(a))
	}
	for _, m := range l.reg.Members() {
		snap.Members = append(snap.Members, models.RecordOfMember(m))
	}
	for _, d := range l.reg.Documents() {
		snap.Documents = append(snap.Documents, models.RecordOfDocument(d))
	}
	for _, e := range l.reg.AllEquipment() {
		snap.Equipment = append(snap.Equipment, models.RecordOfEquipment(e))
	}
	for _, loan := range l.lender.Loans() {
		snap.Loans = append(snap.Loans, models.RecordOfLoan(loan))
	}
	return snap
}

// ExportSnapshot returns the library as a JSON document.
func (l *Library) ExportSnapshot() ([]byte, error) {
	var buf bytes.Buffer
	if err := l.Export(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes the library as JSON to w.
func (l *Library) Export(w io.Writer) error {
	if err := export.WriteJSON(w, l.Snapshot()); err != nil {
		return l.saveFailed("", err)
	}
	return nil
}

// ExportTo saves the library into store.
func (l *Library) ExportTo(ctx context.Context, store storage.SnapshotStore) error {
	if err := store.SaveSnapshot(ctx, l.Snapshot()); err != nil {
		return l.saveFailed("", err)
	}
	return nil
}

// ExportFile saves the library to path. Paths ending in .db, .sqlite or
// .sqlite3 get a SQLite database, anything else a JSON file.
func (l *Library) ExportFile(ctx context.Context, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		store, err := sqlite.New(path)
		if err != nil {
			return l.saveFailed(path, err)
		}
		defer store.Close()
		if err := store.SaveSnapshot(ctx, l.Snapshot()); err != nil {
			return l.saveFailed(path, err)
		}
		return nil
	default:
		return l.exportJSONFile(path)
	}
}

func (l *Library) exportJSONFile(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return l.saveFailed(path, fmt.Errorf("failed to create export directory: %w", err))
	}
	f, err := os.Create(path)
	if err != nil {
		return l.saveFailed(path, fmt.Errorf("failed to create export file: %w", err))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = l.saveFailed(path, fmt.Errorf("failed to close export file: %w", cerr))
		}
	}()

	if err := export.WriteJSON(f, l.Snapshot()); err != nil {
		return l.saveFailed(path, err)
	}
	return nil
}

func (l *Library) saveFailed(path string, err error) error {
	l.logger.Error("Export failed", "library", l.name, "path", path, "error", err)
	return &models.Error{Kind: models.KindSave, Key: path, Err: err}
}
