package history

import "errors"

// Errors returned by history operations.
var (
	// ErrNothingToUndo indicates the cursor is at the start of the log.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the cursor is at the end of the log.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrInvalidElement indicates a pushed snapshot contains an element
	// without a stable ID. The log is left unchanged.
	ErrInvalidElement = errors.New("invalid element in snapshot")

	// ErrCorruptLog indicates an internal consistency violation: no
	// checkpoint was found at or before a reconstruction target. Callers
	// should Clear the log rather than continue with silently lost data.
	ErrCorruptLog = errors.New("history log is corrupt: no reachable checkpoint")
)
