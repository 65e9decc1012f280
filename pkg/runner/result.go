package runner

// FileOutcome records what happened to one source file.
type FileOutcome struct {
	// Path is the source file that was processed.
	Path string

	// Output is the generated file path. Empty when conversion failed
	// before an output path was chosen.
	Output string

	// Bytes is the size of the generated content.
	Bytes int

	// Written is true if Output was created or its content changed.
	Written bool

	// Error is set if the file could not be converted or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files converted without error.
	FilesConverted int

	// FilesWritten is the number of outputs created or changed.
	FilesWritten int

	// FilesUnchanged is the number of outputs whose content already matched.
	FilesUnchanged int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome, dryRun bool) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesConverted++
	switch {
	case outcome.Written:
		r.Stats.FilesWritten++
	case !dryRun:
		r.Stats.FilesUnchanged++
	}
}
