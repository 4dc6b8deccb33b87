package inspector

import (
	"fmt"
	"strings"
)

// Entry is one inspected entity: a title and its components.
type Entry struct {
	Title      string
	Components []any
}

// Report renders entries as indented plain text, one component per line.
func Report(header string, entries []Entry) string {
	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteByte('\n')
	}
	for _, e := range entries {
		b.WriteString(e.Title)
		b.WriteByte('\n')
		for _, c := range e.Components {
			fields := ExtractFields(c)
			if len(fields) == 0 {
				continue
			}
			parts := make([]string, len(fields))
			for i, f := range fields {
				parts[i] = fmt.Sprintf("%s=%s", f.Name, FormatField(f))
			}
			fmt.Fprintf(&b, "  %s: %s\n", ComponentName(c), strings.Join(parts, " "))
		}
	}
	return b.String()
}
