package checkout

import (
	"strings"

	"golang.org/x/text/width"
)

// FieldKind selects the keystroke sanitiser for a form field
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindSize
)

// ToHalfWidth folds full-width ASCII variants and the ideographic space to their narrow forms.
func ToHalfWidth(s string) string {
	return width.Narrow.String(s)
}

// DigitsOnly drops every rune that is not an ASCII digit
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SizeInput keeps ASCII digits and the first decimal point
func SizeInput(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Sanitize applies the per-keystroke normalisation for kind
func Sanitize(value string, kind FieldKind) string {
	v := ToHalfWidth(value)
	switch kind {
	case KindNumber:
		return DigitsOnly(v)
	case KindSize:
		return SizeInput(v)
	default:
		return v
	}
}
