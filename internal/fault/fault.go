// Package fault defines the typed errors shared by the engine packages.
//
// Every failure the engine can produce carries a machine-readable kind so
// the boundary layer (HTTP handlers, CLI) can map it onto a request-level
// failure without string matching.
package fault

import "fmt"

// Validation error kinds.
const (
	KindInvalidHex     = "invalid_hex"
	KindPaletteLength  = "palette_length"
	KindContrastTooLow = "contrast_too_low"
)

// Configuration error kinds.
const (
	KindCatalogMisconfigured = "catalog_misconfigured"
)

// ValidationError rejects a request because of bad input. No partial
// result accompanies it.
type ValidationError struct {
	Kind    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(kind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ConfigError marks a defect in external configuration (the figure
// catalog). It is checked once at load time and should halt startup.
type ConfigError struct {
	Kind    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Configf builds a ConfigError with a formatted message.
func Configf(kind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
