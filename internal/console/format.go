package console

import (
	"strconv"
	"strings"
)

// FormatRupees renders n with Indian digit grouping, e.g. ₹39,93,000
func FormatRupees(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)

	var b strings.Builder
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		lead := len(head) % 2
		if lead > 0 {
			b.WriteString(head[:lead])
		}
		for i := lead; i < len(head); i += 2 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(tail)
	} else {
		b.WriteString(s)
	}

	if neg {
		return "-₹" + b.String()
	}
	return "₹" + b.String()
}

// splitArgs splits a command line on spaces, keeping double-quoted runs together
func splitArgs(line string) []string {
	var args []string
	var cur strings.Builder
	inQuote, started := false, false

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case (r == ' ' || r == '\t') && !inQuote:
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, cur.String())
	}
	return args
}
