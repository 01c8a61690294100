package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxFieldNameLength bounds encoding field names.
const MaxFieldNameLength = 256

// ValidateFieldName validates a column name used in an encoding.
//
// Names must be non-empty, at most MaxFieldNameLength bytes and free of
// control characters.
func ValidateFieldName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidEncoding, "field name cannot be empty")
	}
	if len(name) > MaxFieldNameLength {
		return New(ErrCodeInvalidEncoding, "field name too long (max %d characters)", MaxFieldNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidEncoding, "field name contains invalid control characters")
		}
	}
	return nil
}

// ValidateThreshold validates a downsampling target. Zero disables
// downsampling; any other value must be at least the given minimum.
func ValidateThreshold(n, least int) error {
	if n < 0 {
		return New(ErrCodeInvalidThreshold, "threshold cannot be negative: %d", n)
	}
	if n != 0 && n < least {
		return New(ErrCodeInvalidThreshold, "threshold must be 0 or at least %d, got %d", least, n)
	}
	return nil
}

// ValidateWindow validates a moving-average window over n values.
func ValidateWindow(window, n int) error {
	if window <= 0 {
		return New(ErrCodeInvalidInput, "window must be positive, got %d", window)
	}
	if window > n {
		return New(ErrCodeInvalidInput, "window %d exceeds the %d available values", window, n)
	}
	return nil
}

// ValidateAlpha validates an exponential smoothing factor in [0, 1].
func ValidateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return New(ErrCodeInvalidInput, "alpha must be in [0, 1], got %v", alpha)
	}
	return nil
}

// ValidatePadding validates band padding in [0, 1].
func ValidatePadding(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidInput, "padding must be in [0, 1], got %v", p)
	}
	return nil
}

// ValidateDimensions validates a chart size in pixels.
func ValidateDimensions(width, height float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidInput, "chart dimensions must be positive, got %vx%v", width, height)
	}
	return nil
}

// ValidateChartID validates a stored chart identifier (a UUID).
func ValidateChartID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "chart id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid chart id %q", id)
	}
	return nil
}
