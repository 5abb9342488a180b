package bfvm

import "strings"

// Latin1 renders each byte of out as the code point of the same value,
// so bytes above 0x7f become two-byte UTF-8 sequences.
func Latin1(out string) string {
	var b strings.Builder
	b.Grow(len(out))
	for i := 0; i < len(out); i++ {
		b.WriteRune(rune(out[i]))
	}
	return b.String()
}
