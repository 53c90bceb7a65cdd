// Package logging writes the JSONL change journal and console diagnostics.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nibzard/familytree-go/internal/family"
)

// Event types.
const (
	EventAdd    = "add"
	EventEdit   = "edit"
	EventLink   = "link"
	EventRemove = "remove"
	EventSave   = "save"
	EventError  = "error"
)

// Event is one journal entry.
type Event struct {
	// Type is one of the Event* constants.
	Type string `json:"type"`

	// Timestamp is when the change was committed
	Timestamp time.Time `json:"timestamp"`

	Family string `json:"family"`

	// PersonID is the affected person, zero for save and error events
	PersonID int `json:"person_id,omitempty"`

	// Record is the encoded record after the change
	Record []string `json:"record,omitempty"`

	// Message carries free text: the backend for save, the error for error
	Message string `json:"message,omitempty"`

	// Count is the number of records written (save events)
	Count int `json:"count,omitempty"`
}

// ChangeEvent converts a committed family change into an Event.
func ChangeEvent(familyName string, c family.Change) Event {
	return Event{
		Type:      string(c.Op),
		Timestamp: time.Now().UTC(),
		Family:    familyName,
		PersonID:  c.ID,
		Record:    c.Record,
	}
}

// Writer writes journal events.
type Writer interface {
	Write(event Event) error
}

// StreamWriter writes events as JSON lines.
type StreamWriter struct {
	w io.Writer
}

// NewStreamWriter returns a StreamWriter on w.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// Write appends one JSON line.
func (s *StreamWriter) Write(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal journal event: %w", err)
	}
	data = append(data, '\n')
	_, err = s.w.Write(data)
	return err
}

// MultiWriter fans events out to several writers.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter returns a MultiWriter. Nil writers are skipped.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	m := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			m.writers = append(m.writers, w)
		}
	}
	return m
}

// Write writes the event to every writer and reports all failures.
func (m *MultiWriter) Write(event Event) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Write(event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("journal writer errors: %v", errs)
	}
	return nil
}

// NullWriter discards events.
type NullWriter struct{}

// Write does nothing.
func (NullWriter) Write(Event) error { return nil }
