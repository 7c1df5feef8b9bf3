package history

// BeginBatch opens a batch: pushes are stashed instead of appended until a
// matching EndBatch. Batches nest; only the outermost EndBatch commits.
// Compaction is deferred until the batch commits.
func (l *Log) BeginBatch() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.batchDepth == 0 {
		// Drop any stale pending edit from a cancelled batch.
		l.pending = nil
	}
	l.batchDepth++
}

// EndBatch closes a batch. When the outermost batch ends, the pending edit
// (if any) is committed into the log exactly as a normal push would be.
// Calling EndBatch with no open batch is a no-op.
func (l *Log) EndBatch() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.batchDepth == 0 {
		return nil
	}
	l.batchDepth--
	if l.batchDepth > 0 {
		return nil
	}

	p := l.pending
	l.pending = nil
	if p == nil {
		return nil
	}
	return l.commitLocked(p.snapshot, p.tag)
}

// CancelBatch closes a batch without committing.
// Note: edits already applied to the element store are not rolled back;
// they simply produce no history entry.
func (l *Log) CancelBatch() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.batchDepth == 0 {
		return
	}
	l.batchDepth--
	if l.batchDepth == 0 {
		l.pending = nil
	}
}

// InBatch returns true while at least one batch is open.
func (l *Log) InBatch() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.batchDepth > 0
}

// BatchScope provides a convenient way to batch edits using defer.
// Usage:
//
//	func dragElement(log *history.Log) error {
//	    defer log.Batch().End()
//	    // ... many rapid pushes ...
//	}
type BatchScope struct {
	log    *Log
	active bool
}

// Batch opens a batch scope.
// Call End() or use with defer to properly close the batch.
func (l *Log) Batch() *BatchScope {
	l.BeginBatch()
	return &BatchScope{log: l, active: true}
}

// End ends the batch scope.
// Safe to call multiple times; only the first call has effect.
func (b *BatchScope) End() error {
	if !b.active {
		return nil
	}
	b.active = false
	return b.log.EndBatch()
}

// Cancel cancels the batch scope without committing a history entry.
func (b *BatchScope) Cancel() {
	if b.active {
		b.active = false
		b.log.CancelBatch()
	}
}

// Transaction runs fn inside a batch. If fn returns an error the batch is
// cancelled; otherwise it is committed.
func (l *Log) Transaction(fn func() error) error {
	l.BeginBatch()

	if err := fn(); err != nil {
		l.CancelBatch()
		return err
	}
	return l.EndBatch()
}
