// Package session ties the canvas engine to its configuration and
// surroundings.
//
// A Session wraps an engine with:
//
//   - Coalescing: rapid edits of the same kind (for example a stream of
//     move commits while dragging) arriving within the configured window
//     collapse into a single undo step. A change of edit kind, a pause
//     longer than the window, or any history operation flushes the run.
//   - Persistence: Save and Load serialize the canvas as a versioned
//     JSON document, migrating the legacy unversioned format on read.
//   - Autosave: an optional background loop saving at a fixed interval.
//   - Live reload: ApplyConfig applies a changed configuration to the
//     running session; pair it with the config/watcher package.
//
// Sessions log through the package's Logger, a leveled, field-carrying
// writer shared by the whole application.
package session
