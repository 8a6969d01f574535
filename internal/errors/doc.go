// Package errors provides structured, actionable error messages for the
// rendertree tooling.
//
// Errors carry a code, a category, and optional hints so the CLI can print
// something more useful than a bare message.
//
// # Error Categories
//
// Errors are organized into categories:
//   - protocol: Snapshot decode errors (bad magic, truncation, limits)
//   - snapshot: Store errors (missing snapshots, unreachable backends)
//   - inspect: Inspector server errors
//   - config: Configuration errors
//   - cli: Command-line usage errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "E020") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("E020").
//	    WithSuggestion("Re-export the snapshot with the current tool version")
//
//	fmt.Println(err.Format())
package errors
