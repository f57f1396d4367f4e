package history

import "time"

// TestStatus marks whether an active test has been played yet.
type TestStatus string

const (
	StatusPending  TestStatus = "pending"
	StatusComplete TestStatus = "complete"
)

// ActiveTest is one slot of an in-progress session.
type ActiveTest struct {
	Outcome
	Status TestStatus `json:"status"`
}

// Active is the resumable in-progress session. Tests before CurrentIndex
// are complete, tests from it onward are pending; CurrentIndex == len(Tests)
// means the session is finished and must be finalized, never stored.
type Active struct {
	ID           string       `json:"id"`
	Date         time.Time    `json:"date"`
	Tests        []ActiveTest `json:"tests"`
	CurrentIndex int          `json:"currentIndex"`
}

// Current returns the test being played, or nil when every test is done.
func (a *Active) Current() *ActiveTest {
	if a.CurrentIndex < 0 || a.CurrentIndex >= len(a.Tests) {
		return nil
	}
	return &a.Tests[a.CurrentIndex]
}

// Finished reports whether all tests have been completed.
func (a *Active) Finished() bool {
	return a.CurrentIndex >= len(a.Tests)
}

// Day returns the calendar day the session belongs to.
func (a *Active) Day() string {
	return a.Date.UTC().Format("2006-01-02")
}
