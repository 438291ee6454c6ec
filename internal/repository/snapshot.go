package repository

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/campus-events-api/internal/models"
)

// marshalSnapshot encodes an embedded user snapshot for a JSONB column,
// writing SQL NULL when absent
func marshalSnapshot(s *models.UserSnapshot) (interface{}, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode user snapshot: %w", err)
	}
	return data, nil
}

// unmarshalSnapshot decodes a JSONB user snapshot column
func unmarshalSnapshot(data []byte) (*models.UserSnapshot, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var s models.UserSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode user snapshot: %w", err)
	}
	return &s, nil
}

// isValidID reports whether the id can possibly resolve. Malformed ids are
// treated as not-found rather than surfacing a driver error.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
