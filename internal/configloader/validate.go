package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdmir/pkg/compare"
	"github.com/yaklabco/mdmir/pkg/config"
	"github.com/yaklabco/mdmir/pkg/wire"
)

// Validation bounds.
const (
	maxIndent     = 8
	minMaxHeading = 1
	maxMaxHeading = 6
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the dotted path to the invalid field (e.g., "render.max_heading").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown keys).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if _, err := wire.ParseFormat(cfg.Wire.Format); err != nil {
		result.addError("wire.format", cfg.Wire.Format,
			"invalid format %q; must be one of: json, yaml", cfg.Wire.Format)
	}

	if cfg.Wire.Indent < 0 || cfg.Wire.Indent > maxIndent {
		result.addError("wire.indent", cfg.Wire.Indent,
			"indent must be between 0 and %d", maxIndent)
	}

	if cfg.Render.MaxHeading < minMaxHeading || cfg.Render.MaxHeading > maxMaxHeading {
		result.addError("render.max_heading", cfg.Render.MaxHeading,
			"max_heading must be between %d and %d", minMaxHeading, maxMaxHeading)
	}

	if cfg.Convert.Jobs < 0 {
		result.addError("convert.jobs", cfg.Convert.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, ext := range cfg.Convert.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("convert.extensions[%d]", i), ext,
				"extension %q must start with a dot", ext)
		}
	}

	validateExcludePatterns(cfg, result)

	if !compare.ValidFlavor(cfg.Compare.Flavor) {
		result.addError("compare.flavor", cfg.Compare.Flavor,
			"invalid flavor %q; must be one of: %s, %s",
			cfg.Compare.Flavor, compare.FlavorCommonMark, compare.FlavorGFM)
	}

	return result
}

// validateExcludePatterns checks that exclude patterns compile as globs.
func validateExcludePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Convert.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("convert.exclude[%d]", i), pattern,
				"invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
