package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pzgaai/easel/internal/engine/element"
)

func docPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "canvas.json")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestSession(t, testConfig())

	r, _ := s.Add(element.NewRect(10, 20, 100, 50))
	s.Update(r.ID, map[string]any{element.AttrFill: "#ff0000"})
	s.Add(element.NewText(5, 5, "hello"))

	path := docPath(t)
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh := newTestSession(t, testConfig())
	if err := fresh.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	if !fresh.Elements().Equal(s.Elements()) {
		t.Errorf("loaded canvas differs:\n got %v\nwant %v", fresh.Elements(), s.Elements())
	}
	// The loaded state is the new history baseline.
	if _, err := fresh.Undo(); err == nil {
		t.Error("loaded document should not be undoable")
	}
}

func TestSaveWritesVersionedEnvelope(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.Add(element.NewRect(0, 0, 10, 10))

	path := docPath(t)
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := gjson.GetBytes(data, "version").Int(); got != DocumentVersion {
		t.Errorf("version = %d, want %d", got, DocumentVersion)
	}
	if !gjson.GetBytes(data, "savedAt").Exists() {
		t.Error("expected savedAt timestamp")
	}
	if got := len(gjson.GetBytes(data, "elements").Array()); got != 1 {
		t.Errorf("elements = %d, want 1", got)
	}
}

func TestLoadLegacyArrayDocument(t *testing.T) {
	path := docPath(t)
	legacy := `[{"id":"a","attrs":{"type":"rect","x":1,"zIndex":1}},{"id":"b","attrs":{"type":"rect","x":2,"zIndex":0}}]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := newTestSession(t, testConfig())
	if err := s.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	// Legacy elements come back in stacking order.
	if got := s.Elements(); got[0].ID != "b" {
		t.Errorf("bottom element = %s, want b", got[0].ID)
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	path := docPath(t)
	doc := `{"version":99,"elements":[]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := newTestSession(t, testConfig())
	if err := s.Load(path); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing version", `{"elements":[]}`},
		{"elements not array", `{"version":1,"elements":{}}`},
		{"element without id", `{"version":1,"elements":[{"attrs":{}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := docPath(t)
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}

			s := newTestSession(t, testConfig())
			if err := s.Load(path); !errors.Is(err, ErrMalformedDocument) {
				t.Errorf("expected ErrMalformedDocument, got %v", err)
			}
		})
	}
}

func TestAutosave(t *testing.T) {
	path := docPath(t)

	cfg := testConfig()
	cfg.Autosave.Enabled = true
	cfg.Autosave.IntervalMS = 25
	cfg.Autosave.Path = path
	s := newTestSession(t, cfg)

	s.Add(element.NewRect(0, 0, 10, 10))

	// Wait for an autosave that includes the element; an earlier tick may
	// have saved the empty canvas.
	deadline := time.Now().Add(5 * time.Second)
	for {
		data, err := os.ReadFile(path)
		if err == nil && gjson.GetBytes(data, "elements.#").Int() == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for autosave")
		}
		time.Sleep(10 * time.Millisecond)
	}

	fresh := newTestSession(t, testConfig())
	if err := fresh.Load(path); err != nil {
		t.Fatalf("load autosaved document: %v", err)
	}
	if fresh.Len() != 1 {
		t.Errorf("len = %d, want 1", fresh.Len())
	}
}
