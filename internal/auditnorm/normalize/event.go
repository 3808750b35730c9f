package normalize

import (
	"context"
	"errors"
)

// ErrFirstRecordUnavailable means an event yielded by the source has no readable
// first record. The run cannot continue past it.
var ErrFirstRecordUnavailable = errors.New("error getting first record")

// Record is the read-only view of one raw audit record.
type Record interface {
	// TypeName is the kernel record type name, e.g. "SYSCALL" or "USER_LOGIN".
	TypeName() string
	// Field looks up a raw attribute. ok is false when the record does not carry it.
	Field(key string) (value string, ok bool)
	// Time is the event timestamp as "<sec>.<msec>:<serial>".
	Time() (string, bool)
	// Node is the originating host name, when the log carries one.
	Node() (string, bool)
}

// Event is a cursor over the ordered records of one audit event. Record
// accessors refer to the record the cursor currently points at.
type Event interface {
	Record
	NumRecords() int
	// FirstRecord positions the cursor on the first record.
	FirstRecord() bool
	// NextRecord advances the cursor; false once the event has no more records.
	NextRecord() bool
}

// Source yields audit events in input order.
type Source interface {
	Reset() error
	// NextEvent returns io.EOF once the source is exhausted.
	NextEvent(ctx context.Context) (Event, error)
}
