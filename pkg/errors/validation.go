package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxCategoryLength bounds category names accepted from query strings and flags.
const maxCategoryLength = 128

// ValidateCategory validates a category selection coming from user input
// (a flag, a query parameter, a TUI selection).
//
// Categories are compared by exact equality downstream, so no normalization
// is applied here; the check only rejects values that cannot be a category
// label: empty strings, control characters, and absurd lengths.
func ValidateCategory(category string) error {
	if category == "" {
		return New(ErrCodeInvalidCategory, "category cannot be empty")
	}
	if len(category) > maxCategoryLength {
		return New(ErrCodeInvalidCategory, "category too long (max %d characters)", maxCategoryLength)
	}
	for _, r := range category {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCategory, "category contains invalid control characters")
		}
	}
	return nil
}

// ValidateDimensions checks that a drawing surface has a finite, positive extent.
func ValidateDimensions(width, height float64) error {
	if !isPositiveFinite(width) || !isPositiveFinite(height) {
		return New(ErrCodeInvalidDimensions, "surface must be positive and finite, got %gx%g", width, height)
	}
	return nil
}

// ValidateRadii checks bubble radius parameters. Both the minimum radius and
// the span must be positive.
func ValidateRadii(minRadius, span float64) error {
	if !isPositiveFinite(minRadius) {
		return New(ErrCodeInvalidDimensions, "min radius must be positive, got %g", minRadius)
	}
	if !isPositiveFinite(span) {
		return New(ErrCodeInvalidDimensions, "radius span must be positive, got %g", span)
	}
	return nil
}

// ValidateURL validates an API base URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

func isPositiveFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
