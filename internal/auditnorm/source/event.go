package source

import (
	"time"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
)

// Event is a cursor over the records of one audit event.
type Event struct {
	records []*Record
	pos     int
	done    bool
}

var _ normalize.Event = (*Event)(nil)

func (e *Event) NumRecords() int { return len(e.records) }

func (e *Event) FirstRecord() bool {
	e.pos = 0
	return len(e.records) > 0
}

func (e *Event) NextRecord() bool {
	if e.pos+1 >= len(e.records) {
		return false
	}
	e.pos++
	return true
}

func (e *Event) TypeName() string { return e.records[e.pos].TypeName() }

func (e *Event) Field(key string) (string, bool) { return e.records[e.pos].Field(key) }

func (e *Event) Time() (string, bool) { return e.records[e.pos].Time() }

func (e *Event) Node() (string, bool) { return e.records[e.pos].Node() }

func (e *Event) id() string {
	if len(e.records) == 0 {
		return ""
	}
	return e.records[0].id
}

func (e *Event) stamp() time.Time {
	if len(e.records) == 0 {
		return time.Time{}
	}
	return e.records[0].stamp
}
