package text

import (
	"fmt"
	"strconv"
)

// Plural renders n with the singular or plural noun: "1 fix", "3 fixes".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}

// Signed renders a score adjustment with an explicit sign: "+10", "-5", "0".
func Signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Penalty renders a deduction as a negative number whichever sign the
// agent reported it with: 5 and -5 both give "-5".
func Penalty(n int) string {
	if n < 0 {
		n = -n
	}
	return Signed(-n)
}

// Location renders file:line, or just the file when line is zero.
func Location(file string, line int) string {
	if line <= 0 {
		return file
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// Placeholder returns s, or fallback when s is empty.
func Placeholder(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
