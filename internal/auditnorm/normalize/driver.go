package normalize

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// EmitFunc receives every rendered line in input order. A returned error stops the run.
type EmitFunc func(Line) error

// Driver walks a Source event by event and record by record. It owns the
// event counter and the per-event Context; a Driver must not be shared
// between goroutines or between independent streams.
type Driver struct {
	events int
	ctx    *Context
}

// NewDriver returns a Driver with its counters at zero.
func NewDriver() *Driver {
	return &Driver{ctx: NewContext()}
}

// Events reports how many events have been processed so far.
func (d *Driver) Events() int { return d.events }

// Run resets src and normalizes it until exhaustion. It returns nil when the
// source reports io.EOF and ErrFirstRecordUnavailable when an event has no
// readable first record.
func (d *Driver) Run(ctx context.Context, src Source, emit EmitFunc) error {
	if err := src.Reset(); err != nil {
		return fmt.Errorf("reset source: %w", err)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		evt, err := src.NextEvent(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("next event: %w", err)
		}
		if err := d.processEvent(evt, emit); err != nil {
			return err
		}
	}
}

func (d *Driver) processEvent(evt Event, emit EmitFunc) error {
	if !evt.FirstRecord() {
		return fmt.Errorf("event %d: %w", d.events+1, ErrFirstRecordUnavailable)
	}
	d.events++
	d.ctx.Reset()
	count := evt.NumRecords()

	for ordinal := 1; ; ordinal++ {
		cat := Classify(evt.TypeName())
		ses, pid := d.ctx.Observe(cat, evt, ordinal)
		rec := Extract(cat, evt, ses, pid)
		line := Line{
			EventOrdinal:  d.events,
			RecordCount:   count,
			RecordOrdinal: ordinal,
			Category:      cat,
			Text:          Format(d.events, count, ordinal, rec),
		}
		if err := emit(line); err != nil {
			return fmt.Errorf("emit event %d record %d: %w", d.events, ordinal, err)
		}
		if !evt.NextRecord() {
			return nil
		}
	}
}
