package events

import "time"

// LintStart is emitted before checking a query document against a schema.
type LintStart struct {
	Query string
}

// LintFinish is emitted after a check completes.
type LintFinish struct {
	Query    string
	Problems int
	Duration time.Duration
}
