package engine

import (
	"github.com/pzgaai/easel/internal/engine/element"
	"github.com/pzgaai/easel/internal/engine/history"
	"github.com/pzgaai/easel/internal/engine/store"
)

// Errors returned by engine operations. These alias the sentinels of the
// underlying packages so callers can match with errors.Is against either.
var (
	// ErrElementNotFound indicates the referenced element does not exist.
	ErrElementNotFound = store.ErrElementNotFound

	// ErrDuplicateID indicates an element with the same ID already exists.
	ErrDuplicateID = store.ErrDuplicateID

	// ErrNothingToUndo indicates the cursor is already at the oldest state.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the cursor is already at the newest state.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrInvalidElement indicates a snapshot contained a malformed element.
	ErrInvalidElement = history.ErrInvalidElement

	// ErrCorruptLog indicates the history log lost its base checkpoint.
	ErrCorruptLog = history.ErrCorruptLog

	// ErrInvalidColor indicates a color attribute could not be parsed.
	ErrInvalidColor = element.ErrInvalidColor
)
