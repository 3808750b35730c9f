package normalize

import (
	"context"
	"io"
)

// fakeRecord is a raw record backed by a map.
type fakeRecord struct {
	typeName string
	fields   map[string]string
}

func rec(typeName string, kv ...string) fakeRecord {
	fields := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}
	return fakeRecord{typeName: typeName, fields: fields}
}

func (r fakeRecord) TypeName() string { return r.typeName }

func (r fakeRecord) Field(key string) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

func (r fakeRecord) Time() (string, bool) { return "1700000000.123:42", true }

func (r fakeRecord) Node() (string, bool) { return "", false }

// fakeEvent implements Event over a slice of records.
type fakeEvent struct {
	records []fakeRecord
	pos     int
}

func (e *fakeEvent) cur() fakeRecord { return e.records[e.pos] }

func (e *fakeEvent) TypeName() string                { return e.cur().TypeName() }
func (e *fakeEvent) Field(key string) (string, bool) { return e.cur().Field(key) }
func (e *fakeEvent) Time() (string, bool)            { return e.cur().Time() }
func (e *fakeEvent) Node() (string, bool)            { return e.cur().Node() }
func (e *fakeEvent) NumRecords() int                 { return len(e.records) }

func (e *fakeEvent) FirstRecord() bool {
	e.pos = 0
	return len(e.records) > 0
}

func (e *fakeEvent) NextRecord() bool {
	if e.pos+1 >= len(e.records) {
		return false
	}
	e.pos++
	return true
}

// fakeSource replays a fixed list of events.
type fakeSource struct {
	events [][]fakeRecord
	next   int
	resets int
}

func (s *fakeSource) Reset() error {
	s.next = 0
	s.resets++
	return nil
}

func (s *fakeSource) NextEvent(ctx context.Context) (Event, error) {
	if s.next >= len(s.events) {
		return nil, io.EOF
	}
	evt := &fakeEvent{records: s.events[s.next]}
	s.next++
	return evt, nil
}

func collect(lines *[]Line) EmitFunc {
	return func(l Line) error {
		*lines = append(*lines, l)
		return nil
	}
}
