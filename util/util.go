package util

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

func Max[A constraints.Ordered](a A, b A) A {
	if a < b {
		return b
	}
	return a
}

func Min[A constraints.Ordered](a A, b A) A {
	if a > b {
		return b
	}
	return a
}

// RuneLen counts characters, not bytes. Combining marks count as one each.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

func PadRight(s string, width int) string {
	n := RuneLen(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Center pads s with spaces on both sides. An odd margin puts the extra
// space on the right unless width is odd too, same as Python's str.center.
func Center(s string, width int) string {
	n := RuneLen(s)
	if n >= width {
		return s
	}
	margin := width - n
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", margin-left)
}
