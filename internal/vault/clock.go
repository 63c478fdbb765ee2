package vault

import "time"

// Clock supplies current time for record timestamps, retention cutoffs and
// export filenames. Injected so tests can pin it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
