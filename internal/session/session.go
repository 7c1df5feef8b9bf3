package session

import (
	"sync"
	"time"

	"github.com/pzgaai/easel/internal/config"
	"github.com/pzgaai/easel/internal/engine"
	"github.com/pzgaai/easel/internal/engine/history"
)

// Notifier receives change notifications after committed operations.
// Implementations must not call back into the Session.
type Notifier interface {
	// CanvasChanged reports the IDs of elements that changed.
	CanvasChanged(ids []string)

	// HistoryChanged reports the history log's new shape.
	HistoryChanged(stats engine.Stats)
}

// Session ties an engine to its configuration. It coalesces rapid
// same-kind edits into single undo steps, drives autosave, and applies
// live configuration reloads.
type Session struct {
	mu sync.Mutex

	eng *engine.Engine
	cfg config.Config
	log *Logger

	notifier Notifier

	// Coalescing state. While coalescing is true an engine batch is
	// open and commits accumulate into one history entry.
	coalesceWindow time.Duration
	coalescing     bool
	lastTag        string
	lastCommit     time.Time
	flushTimer     *time.Timer

	autosaveStop chan struct{}
	autosaveWG   sync.WaitGroup

	closed bool
}

// New creates a session from the given configuration.
func New(cfg config.Config, logger *Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NullLogger
	}

	s := &Session{
		eng: engine.New(
			engine.WithSnapping(cfg.Canvas.SnapEnabled),
			engine.WithSnapTolerance(cfg.Canvas.SnapTolerance),
			engine.WithRotationStep(cfg.Canvas.RotationStep),
			engine.WithCanvasBounds(engine.Rect{W: cfg.Canvas.Width, H: cfg.Canvas.Height}),
			engine.WithHistoryOptions(
				history.WithMaxEntries(cfg.History.MaxEntries),
				history.WithCompactionThreshold(cfg.History.CompactionThreshold),
				history.WithRetainFraction(cfg.History.RetainFraction),
				history.WithCheckpointInterval(cfg.History.CheckpointInterval),
			),
		),
		cfg:            cfg,
		log:            logger.WithComponent("session"),
		coalesceWindow: time.Duration(cfg.History.BatchCoalesceWindowMS) * time.Millisecond,
	}

	if cfg.Autosave.Enabled {
		s.startAutosaveLocked()
	}

	return s, nil
}

// SetNotifier registers the change notifier. Pass nil to unregister.
func (s *Session) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Engine exposes the underlying engine for read-only inspection.
func (s *Session) Engine() *engine.Engine {
	return s.eng
}

// ============================================================================
// Edit Operations
// ============================================================================

// Add inserts an element into the canvas.
func (s *Session) Add(el engine.Element) (engine.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coalesceLocked(engine.TagAdd)
	added, err := s.eng.AddElement(el)
	if err != nil {
		return engine.Element{}, err
	}
	s.committedLocked(engine.TagAdd, []string{added.ID})
	return added, nil
}

// Update patches an element's attributes.
func (s *Session) Update(id string, attrs map[string]any) (engine.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coalesceLocked(engine.TagUpdate)
	updated, err := s.eng.UpdateElement(id, attrs)
	if err != nil {
		return engine.Element{}, err
	}
	s.committedLocked(engine.TagUpdate, []string{id})
	return updated, nil
}

// Move positions an element, snapping when enabled. Rapid consecutive
// moves coalesce into a single undo step.
func (s *Session) Move(id string, x, y float64) (engine.Element, engine.SnapResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coalesceLocked(engine.TagMove)
	moved, res, err := s.eng.MoveElement(id, x, y)
	if err != nil {
		return engine.Element{}, engine.SnapResult{}, err
	}
	s.committedLocked(engine.TagMove, []string{id})
	return moved, res, nil
}

// Rotate sets an element's rotation.
func (s *Session) Rotate(id string, angle float64) (engine.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coalesceLocked(engine.TagRotate)
	rotated, err := s.eng.RotateElement(id, angle)
	if err != nil {
		return engine.Element{}, err
	}
	s.committedLocked(engine.TagRotate, []string{id})
	return rotated, nil
}

// Remove deletes an element.
func (s *Session) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coalesceLocked(engine.TagRemove)
	if err := s.eng.RemoveElement(id); err != nil {
		return err
	}
	s.committedLocked(engine.TagRemove, []string{id})
	return nil
}

// BringForward raises an element one step in stacking order.
func (s *Session) BringForward(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coalesceLocked(engine.TagReorder)
	if err := s.eng.BringForward(id); err != nil {
		return err
	}
	s.committedLocked(engine.TagReorder, []string{id})
	return nil
}

// SendBackward lowers an element one step in stacking order.
func (s *Session) SendBackward(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coalesceLocked(engine.TagReorder)
	if err := s.eng.SendBackward(id); err != nil {
		return err
	}
	s.committedLocked(engine.TagReorder, []string{id})
	return nil
}

// ============================================================================
// History Operations
// ============================================================================

// Undo steps the canvas back one entry. Any open coalescing batch is
// flushed first so the latest edits are undone as a unit.
func (s *Session) Undo() (*engine.Restored, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushLocked()
	r, err := s.eng.Undo()
	if err != nil {
		return nil, err
	}
	s.log.Debug("undo %q touched %d elements", r.Tag, len(r.ChangedIDs))
	s.notifyLocked(r.ChangedIDs)
	return r, nil
}

// Redo steps the canvas forward one entry.
func (s *Session) Redo() (*engine.Restored, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushLocked()
	r, err := s.eng.Redo()
	if err != nil {
		return nil, err
	}
	s.log.Debug("redo %q touched %d elements", r.Tag, len(r.ChangedIDs))
	s.notifyLocked(r.ChangedIDs)
	return r, nil
}

// Flush commits any open coalescing batch immediately.
func (s *Session) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

// Stats summarizes the history log, flushing pending edits first.
func (s *Session) Stats() engine.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushLocked()
	return s.eng.HistoryStats()
}

// ClearHistory drops all undo/redo history.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushLocked()
	s.eng.ClearHistory()
}

// ============================================================================
// Read Operations
// ============================================================================

// Element returns the element with the given ID.
func (s *Session) Element(id string) (engine.Element, bool) {
	return s.eng.Element(id)
}

// Elements returns all elements in stacking order.
func (s *Session) Elements() engine.Collection {
	return s.eng.Elements()
}

// Len returns the number of elements on the canvas.
func (s *Session) Len() int {
	return s.eng.Len()
}

// ============================================================================
// Configuration
// ============================================================================

// Config returns the active configuration.
func (s *Session) Config() config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// ApplyConfig applies a reloaded configuration to the running session.
// Canvas and coalescing settings take effect immediately; history log
// sizing applies to the next session.
func (s *Session) ApplyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.flushLocked()

	s.eng.SetSnapping(cfg.Canvas.SnapEnabled)
	s.eng.SetSnapTolerance(cfg.Canvas.SnapTolerance)
	s.eng.SetRotationStep(cfg.Canvas.RotationStep)
	s.eng.SetCanvasBounds(engine.Rect{W: cfg.Canvas.Width, H: cfg.Canvas.Height})
	s.coalesceWindow = time.Duration(cfg.History.BatchCoalesceWindowMS) * time.Millisecond
	s.log.SetLevel(ParseLogLevel(cfg.Logging.Level))

	autosaveChanged := cfg.Autosave != s.cfg.Autosave
	s.cfg = cfg

	if autosaveChanged {
		s.stopAutosaveLocked()
		if cfg.Autosave.Enabled {
			s.startAutosaveLocked()
		}
	}

	s.log.Info("configuration reloaded")
	return nil
}

// Close flushes pending edits and stops background work.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.flushLocked()
	s.stopAutosaveLocked()
}

// ============================================================================
// Coalescing
// ============================================================================

// coalesceLocked prepares the history log for a commit with the given
// tag. A change of tag, or a gap longer than the window, closes the open
// batch so the previous run becomes its own undo step.
func (s *Session) coalesceLocked(tag string) {
	if s.coalesceWindow <= 0 {
		s.flushLocked()
		return
	}

	if s.coalescing && (tag != s.lastTag || time.Since(s.lastCommit) > s.coalesceWindow) {
		s.flushLocked()
	}
	if !s.coalescing {
		s.eng.BeginBatch()
		s.coalescing = true
	}
}

// committedLocked records bookkeeping after a successful engine commit
// and notifies listeners.
func (s *Session) committedLocked(tag string, ids []string) {
	s.lastTag = tag
	s.lastCommit = time.Now()

	if s.coalescing {
		if s.flushTimer != nil {
			s.flushTimer.Stop()
		}
		s.flushTimer = time.AfterFunc(s.coalesceWindow, s.flushExpired)
	}

	s.notifyLocked(ids)
}

// flushExpired closes the batch once the window has passed with no
// further commits.
func (s *Session) flushExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.coalescing && time.Since(s.lastCommit) >= s.coalesceWindow {
		s.flushLocked()
	}
}

func (s *Session) flushLocked() {
	if s.flushTimer != nil {
		s.flushTimer.Stop()
		s.flushTimer = nil
	}
	if !s.coalescing {
		return
	}
	s.coalescing = false
	if err := s.eng.EndBatch(); err != nil {
		s.log.Error("flushing batch: %v", err)
	}
}

func (s *Session) notifyLocked(ids []string) {
	if s.notifier == nil {
		return
	}
	s.notifier.CanvasChanged(ids)
	s.notifier.HistoryChanged(s.eng.HistoryStats())
}

// ============================================================================
// Autosave
// ============================================================================

func (s *Session) startAutosaveLocked() {
	interval := time.Duration(s.cfg.Autosave.IntervalMS) * time.Millisecond
	if interval <= 0 {
		return
	}
	path := s.cfg.Autosave.Path

	stop := make(chan struct{})
	s.autosaveStop = stop
	s.autosaveWG.Add(1)

	go func() {
		defer s.autosaveWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := s.Save(path); err != nil {
					s.log.Error("autosave: %v", err)
				} else {
					s.log.Debug("autosaved to %s", path)
				}
			}
		}
	}()
}

func (s *Session) stopAutosaveLocked() {
	if s.autosaveStop == nil {
		return
	}
	close(s.autosaveStop)
	s.autosaveStop = nil

	// Release the lock while the goroutine drains; it may be inside Save.
	s.mu.Unlock()
	s.autosaveWG.Wait()
	s.mu.Lock()
}
