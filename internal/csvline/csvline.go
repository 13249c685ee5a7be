// Package csvline builds the comma-separated lines written to the layer
// logs.
package csvline

import (
	"fmt"
	"strconv"
	"strings"
)

// Cat stringifies fields and joins them with commas. Strings are appended
// verbatim so an already serialized payload can be used as a trailing cell
// group; use Quote for values that must stay one cell.
func Cat(fields ...any) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		appendField(&b, f)
	}
	return b.String()
}

func appendField(b *strings.Builder, f any) {
	switch v := f.(type) {
	case string:
		b.WriteString(v)
	case []byte:
		b.Write(v)
	case int:
		b.WriteString(strconv.Itoa(v))
	case int32:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(v, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case fmt.Stringer:
		b.WriteString(v.String())
	default:
		fmt.Fprint(b, v)
	}
}

// Quote wraps s in double quotes, doubling any embedded quote, so that s is
// read back as a single cell.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			b.WriteByte('"')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// Line returns s terminated by exactly one newline, ready for a single
// write call.
func Line(s string) []byte {
	buf := make([]byte, 0, len(s)+1)
	buf = append(buf, s...)
	if len(s) == 0 || s[len(s)-1] != '\n' {
		buf = append(buf, '\n')
	}
	return buf
}
