package format

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes a strict EDN subset: maps with keyword keys, vectors,
// strings, integers, floats, booleans and nil. camelCase json keys become
// kebab-case keywords (longDescription -> :long-description).
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := toGeneric(v)
	if err != nil {
		return err
	}
	e := ednWriter{pretty: pretty, indent: 2}
	e.value(x, 0)
	e.sb.WriteByte('\n')
	_, err = io.WriteString(w, e.sb.String())
	return err
}

type ednWriter struct {
	sb     strings.Builder
	pretty bool
	indent int
}

func (e *ednWriter) value(v any, level int) {
	switch t := v.(type) {
	case nil:
		e.sb.WriteString("nil")
	case bool:
		e.sb.WriteString(strconv.FormatBool(t))
	case string:
		e.sb.WriteString(strconv.Quote(t))
	case int64:
		e.sb.WriteString(strconv.FormatInt(t, 10))
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			// EDN reads a bare integer literal as a long.
			s += ".0"
		}
		e.sb.WriteString(s)
	case []any:
		e.seq('[', ']', len(t), level, func(i int) { e.value(t[i], level+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.seq('{', '}', len(keys), level, func(i int) {
			e.sb.WriteByte(':')
			e.sb.WriteString(ednKeyword(keys[i]))
			e.sb.WriteByte(' ')
			e.value(t[keys[i]], level+1)
		})
	default:
		e.sb.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

func (e *ednWriter) seq(start, end byte, n, level int, item func(i int)) {
	e.sb.WriteByte(start)
	if n == 0 {
		e.sb.WriteByte(end)
		return
	}
	for i := 0; i < n; i++ {
		switch {
		case e.pretty:
			e.sb.WriteByte('\n')
			e.sb.WriteString(strings.Repeat(" ", (level+1)*e.indent))
		case i > 0:
			e.sb.WriteByte(' ')
		}
		item(i)
	}
	if e.pretty {
		e.sb.WriteByte('\n')
		e.sb.WriteString(strings.Repeat(" ", level*e.indent))
	}
	e.sb.WriteByte(end)
}

// ednKeyword turns a json key into a kebab-case keyword name.
func ednKeyword(s string) string {
	s = strings.TrimSpace(s)
	var sb strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '_':
			sb.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			sb.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return sb.String()
}
