package errs

import (
	"fmt"
	"time"
)

// CooldownActiveError carries the wait until the next claim is allowed.
// errors.Is(err, CooldownActive) matches it.
type CooldownActiveError struct {
	Remaining time.Duration
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("%s: retry in %s", CooldownActive, e.Remaining)
}

func (e *CooldownActiveError) Unwrap() error {
	return CooldownActive
}
