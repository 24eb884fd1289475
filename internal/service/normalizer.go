package service

import "github.com/vanshika/socialgraph/internal/socialgraph"

// normalizeUserID canonicalizes an operator-supplied user id the same way
// snapshots are normalized on load.
func normalizeUserID(id string) (string, error) {
	return socialgraph.NormalizeID(id)
}

func normalizePair(a, b string) (string, string, error) {
	a, err := normalizeUserID(a)
	if err != nil {
		return "", "", err
	}
	b, err = normalizeUserID(b)
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

// sanitizeString collapses whitespace and trims the result. Blank input
// yields "".
func sanitizeString(value string) string {
	id, err := socialgraph.NormalizeID(value)
	if err != nil {
		return ""
	}
	return id
}
