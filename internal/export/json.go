// Package export writes library snapshots as JSON streams.
package export

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/mmynk/biblio/internal/models"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteJSON encodes snap to w as indented JSON.
func WriteJSON(w io.Writer, snap *models.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is required")
	}
	enc := codec.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadJSON decodes a snapshot previously written by WriteJSON.
func ReadJSON(r io.Reader) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	if err := codec.NewDecoder(r).Decode(snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
