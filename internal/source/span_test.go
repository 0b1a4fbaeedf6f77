package source

import (
	"testing"
)

func TestSpanEmptyAndLen(t *testing.T) {
	tests := []struct {
		name  string
		span  Span
		empty bool
		len   uint32
	}{
		{name: "empty span", span: Span{File: 1, Start: 5, End: 5}, empty: true, len: 0},
		{name: "one byte", span: Span{File: 1, Start: 5, End: 6}, empty: false, len: 1},
		{name: "wide span", span: Span{File: 1, Start: 0, End: 42}, empty: false, len: 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, expected %v", got, tt.empty)
			}
			if got := tt.span.Len(); got != tt.len {
				t.Errorf("Len() = %d, expected %d", got, tt.len)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "b extends right",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 15, End: 30},
			expected: Span{File: 1, Start: 10, End: 30},
		},
		{
			name:     "b extends left",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 2, End: 12},
			expected: Span{File: 1, Start: 2, End: 20},
		},
		{
			name:     "b inside a",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 12, End: 15},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "different file ignored",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSpanString(t *testing.T) {
	s := Span{File: 3, Start: 7, End: 19}
	if got := s.String(); got != "3:7-19" {
		t.Errorf("String() = %q", got)
	}
}
