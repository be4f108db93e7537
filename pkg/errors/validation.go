package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateCI validates a confidence level. It must lie strictly between 0 and 1.
func ValidateCI(ci float64) error {
	if math.IsNaN(ci) || ci <= 0 || ci >= 1 {
		return New(ErrCodeInvalidArgument, "ci must be between 0 and 1 (exclusive), got %v", ci)
	}
	return nil
}

// ValidateParameterName validates a parameter identity.
//
// Parameter names are join keys between the parameter table and the
// scale-factor table, so they must be non-empty and free of control
// characters. Function-call syntax (log(x), factor(g)B) is allowed.
func ValidateParameterName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidModel, "parameter name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidModel, "parameter name %q contains control characters", name)
		}
	}
	return nil
}

// ValidateParameterNames validates every name and rejects duplicates.
func ValidateParameterNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if err := ValidateParameterName(n); err != nil {
			return err
		}
		if seen[n] {
			return New(ErrCodeInvalidModel, "duplicate parameter %q", n)
		}
		seen[n] = true
	}
	return nil
}

// supportedModelExts lists the model file encodings understood by pkg/io.
var supportedModelExts = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateModelPath validates a model description file path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .json, .yaml, .yml or .toml
func ValidateModelPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "model path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "model path contains invalid characters")
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedModelExts[ext] {
		return New(ErrCodeInvalidFormat, "unsupported model file extension %q (must be one of: .json, .yaml, .yml, .toml)", ext)
	}
	return nil
}
