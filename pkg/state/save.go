package state

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jwebster45206/adventure-engine/pkg/scenario"
)

// SaveHistoryLimit is the number of history records kept in a save document.
const SaveHistoryLimit = 20

// HistoryRecord is one matched player action.
type HistoryRecord struct {
	Time   time.Time       `json:"time"`
	Scene  string          `json:"scene"`
	Action string          `json:"action"` // Raw input text
	Option scenario.Option `json:"option"`
}

// SaveDocument is the persisted form of a game.
type SaveDocument struct {
	GameID        string          `json:"game_id"`
	Player        Player          `json:"player"`
	State         Status          `json:"state"`
	CurrentScene  string          `json:"current_scene,omitempty"`
	ScenesVisited []string        `json:"scenes_visited"`
	History       []HistoryRecord `json:"history"`
	SavedAt       time.Time       `json:"saved_at,omitzero"`
}

// TrimHistory returns the last SaveHistoryLimit records as a new slice.
func TrimHistory(history []HistoryRecord) []HistoryRecord {
	if len(history) > SaveHistoryLimit {
		history = history[len(history)-SaveHistoryLimit:]
	}
	return append(make([]HistoryRecord, 0, len(history)), history...)
}

// Validate checks the fields a load depends on.
func (d *SaveDocument) Validate() error {
	if d.GameID == "" {
		return fmt.Errorf("save document has no game_id")
	}
	if _, err := ParseStatus(string(d.State)); err != nil {
		return err
	}
	d.Player.normalize()
	if d.ScenesVisited == nil {
		d.ScenesVisited = []string{}
	}
	if d.History == nil {
		d.History = []HistoryRecord{}
	}
	return nil
}

// Marshal encodes the document as indented JSON.
func (d *SaveDocument) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal save document: %w", err)
	}
	return data, nil
}

// UnmarshalSaveDocument decodes and validates a save document.
func UnmarshalSaveDocument(data []byte) (*SaveDocument, error) {
	var doc SaveDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid save document: %w", err)
	}
	return &doc, nil
}

// WriteSaveFile writes the document to path in a single write. A crash
// mid-write can leave a truncated file.
func WriteSaveFile(path string, doc *SaveDocument) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}

// ReadSaveFile reads a document written by WriteSaveFile.
func ReadSaveFile(path string) (*SaveDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}
	return UnmarshalSaveDocument(data)
}
