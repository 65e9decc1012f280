// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldCommand    = "command"

	// Pipeline fields.
	FieldFormat   = "format"
	FieldTokens   = "tokens"
	FieldNodes    = "nodes"
	FieldBytes    = "bytes"
	FieldFlavor   = "flavor"
	FieldLanguage = "language"
	FieldJobs     = "jobs"
	FieldDuration = "duration"
	FieldWritten  = "written"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesConverted  = "files_converted"
	FieldFilesUnchanged  = "files_unchanged"
	FieldFilesFailed     = "files_failed"
	FieldDifferences     = "differences"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
