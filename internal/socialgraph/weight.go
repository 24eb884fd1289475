package socialgraph

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxWeight is the largest accepted connection weight. A path has fewer than
// |V| edges, so its cost stays within int on 64-bit platforms.
const MaxWeight = math.MaxInt32

// ParseWeight converts operator input into a connection weight.
func ParseWeight(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	w, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse weight %q: %w", text, ErrInvalidWeight)
	}
	if w < 0 || w > MaxWeight {
		return 0, fmt.Errorf("parse weight %q: %w", text, ErrInvalidWeight)
	}
	return w, nil
}
