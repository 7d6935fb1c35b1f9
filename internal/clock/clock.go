// Package clock abstracts time so use cases resolving "now" stay testable.
package clock

import "time"

// Clock yields the current time; invoice creation uses it to default the
// effective date.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
