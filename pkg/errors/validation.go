package errors

import (
	"strconv"
	"strings"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
)

// ParseCapacity parses a user-supplied capacity such as a CLI argument or a
// URL segment and checks it can be generated.
func ParseCapacity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, New(ErrCodeInvalidCapacity, "capacity %q is not a number", s)
	}
	if err := bracket.CheckLimit(n); err != nil {
		return 0, &Error{Code: ErrCodeInvalidCapacity, Cause: err}
	}
	return n, nil
}
