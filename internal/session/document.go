package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/pzgaai/easel/internal/engine"
	"github.com/pzgaai/easel/internal/engine/element"
)

// DocumentVersion is the current on-disk document format version.
// Version 0 (a bare element array, no envelope) is still readable.
const DocumentVersion = 1

// Errors returned by document loading.
var (
	// ErrUnsupportedVersion indicates the document was written by a
	// newer format than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported document version")

	// ErrMalformedDocument indicates the document is not valid JSON or
	// is missing required structure.
	ErrMalformedDocument = errors.New("malformed document")
)

// Save writes the current canvas to path as a versioned JSON document.
// Pending coalesced edits are flushed first.
func (s *Session) Save(path string) error {
	s.mu.Lock()
	s.flushLocked()
	snapshot := s.eng.Snapshot()
	s.mu.Unlock()

	data, err := encodeDocument(snapshot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing document %s: %w", path, err)
	}

	s.log.Info("saved %d elements to %s", len(snapshot), path)
	return nil
}

// Load replaces the canvas with the document at path and resets history.
func (s *Session) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document %s: %w", path, err)
	}

	c, err := decodeDocument(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushLocked()
	if err := s.eng.SetElements(c); err != nil {
		return err
	}
	s.log.Info("loaded %d elements from %s", len(c), path)
	s.notifyLocked(c.IDs())
	return nil
}

// encodeDocument serializes a collection into the versioned envelope.
func encodeDocument(c engine.Collection) ([]byte, error) {
	out := []byte(`{}`)

	var err error
	if out, err = sjson.SetBytes(out, "version", DocumentVersion); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if out, err = sjson.SetBytes(out, "savedAt", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	els := make([]map[string]any, len(c))
	for i, el := range c {
		els[i] = map[string]any{"id": el.ID, "attrs": el.Attrs}
	}
	if out, err = sjson.SetBytes(out, "elements", els); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return out, nil
}

// decodeDocument parses a document, migrating the legacy bare-array
// format when no version field is present.
func decodeDocument(data []byte) (engine.Collection, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedDocument
	}
	root := gjson.ParseBytes(data)

	var elements gjson.Result
	version := root.Get("version")
	switch {
	case root.IsArray():
		// Legacy format: the whole document is the element array.
		elements = root
	case !version.Exists():
		return nil, fmt.Errorf("%w: missing version", ErrMalformedDocument)
	case version.Int() == DocumentVersion:
		elements = root.Get("elements")
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version.Int())
	}

	if !elements.IsArray() {
		return nil, fmt.Errorf("%w: elements is not an array", ErrMalformedDocument)
	}

	items := elements.Array()
	c := make(element.Collection, 0, len(items))
	for _, item := range items {
		attrs, _ := item.Get("attrs").Value().(map[string]any)
		c = append(c, element.New(item.Get("id").String(), attrs))
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	c.SortByZIndex()
	return c, nil
}
