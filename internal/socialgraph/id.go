package socialgraph

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeID canonicalizes a user id: runs of whitespace collapse to one
// space and the ends are trimmed. Every id stored in a Graph built by
// FromSnapshot, and every id accepted by the service, is in this form.
func NormalizeID(id string) (string, error) {
	id = strings.TrimSpace(whitespaceRun.ReplaceAllString(id, " "))
	if id == "" {
		return "", ErrEmptyID
	}
	return id, nil
}
