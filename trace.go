package dnscanon

import (
	"time"

	"github.com/google/uuid"
)

// Trace identifies a single verification run in log output.
type Trace struct {
	Id    uuid.UUID
	Start time.Time
}

func NewTrace() *Trace {
	return newTraceWithStart(time.Now())
}

func newTraceWithStart(start time.Time) *Trace {
	id, _ := uuid.NewV7()
	return &Trace{
		Id:    id,
		Start: start,
	}
}

func (t *Trace) ID() string {
	return t.Id.String()
}

func (t *Trace) ShortID() string {
	// Return only the last 7 characters. In the vast majority of cases this is unique enough.
	return t.ID()[29:]
}

func (t *Trace) Elapsed() time.Duration {
	return time.Since(t.Start)
}
