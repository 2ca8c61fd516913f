package gitignore

import "strings"

// Translate converts one trimmed, non-comment ignore line into the glob form
// matched against paths relative to the scan root.
//
// Escapes ("\#", "\!") are not interpreted.
func Translate(line string) string {
	p := line

	if strings.HasSuffix(p, "/") {
		p += "**"
	}

	p = strings.ReplaceAll(p, "**/", "**")

	if strings.HasPrefix(p, "/") {
		return p[1:]
	}
	if !strings.HasPrefix(p, "**/") {
		p = "**/" + p
	}
	return p
}
