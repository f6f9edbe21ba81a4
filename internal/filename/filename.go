// Package filename expands the %n/%f placeholders a capture consumer
// uses to name files on disk, ported from original_source/mjv_filename.c's
// mjv_filename_forge. The C original preallocates an exact buffer by
// counting placeholders and digit widths up front; Go's strings.Builder
// makes that bookkeeping unnecessary, so Forge keeps only the substitution
// semantics (%n -> source name, %f -> frame number, any other run of
// characters passed through verbatim).
package filename

import (
	"strconv"
	"strings"
)

// Forge expands pattern, replacing every "%n" with srcname and every "%f"
// with framenum's decimal digits.
func Forge(srcname string, framenum uint64, pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))

	num := strconv.FormatUint(framenum, 10)

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 >= len(pattern) {
			b.WriteByte(pattern[i])
			continue
		}
		switch pattern[i+1] {
		case 'n':
			b.WriteString(srcname)
			i++
		case 'f':
			b.WriteString(num)
			i++
		default:
			b.WriteByte(pattern[i])
		}
	}
	return b.String()
}
