package cards

import (
	"fmt"
	"strings"

	"github.com/geekhub/mainframe/internal/domain/errs"
)

// NotOwnedError is returned when a card switch names a card the user does
// not own. Suggestions holds owned sysnames that look close to it.
type NotOwnedError struct {
	Sysname     string
	Suggestions []string
}

func (e *NotOwnedError) Error() string {
	msg := fmt.Sprintf("card %q not found in collection", e.Sysname)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NotOwnedError) Unwrap() error {
	return errs.ErrCardNotOwned
}
