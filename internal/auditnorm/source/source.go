package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/logger"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
)

// Opener opens one input stream. It is called again on every Reset.
type Opener func() (io.ReadCloser, error)

// FileOpener opens path read-only.
func FileOpener(path string) Opener {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

// ReaderOpener wraps a stream that can only be read once, such as stdin.
func ReaderOpener(r io.Reader) Opener {
	used := false
	return func() (io.ReadCloser, error) {
		if used {
			return nil, errors.New("input stream cannot be rewound")
		}
		used = true
		return io.NopCloser(r), nil
	}
}

// Options configures a LogSource.
type Options struct {
	Window Window
}

// maxOpenEvents bounds how many events may be waiting for more records. When
// it is exceeded the oldest event is emitted as is.
const maxOpenEvents = 32

// LogSource reads auditd text logs from a sequence of inputs and groups
// records sharing an event id into events, also when records of other events
// are interleaved with them. Events are returned in first-seen order.
type LogSource struct {
	openers []Opener
	opts    Options

	idx     int
	cur     io.ReadCloser
	scanner *bufio.Scanner
	line    int
	skipped int
	started bool

	open     map[string]*Event
	queue    []*Event
	flushing bool
}

var _ normalize.Source = (*LogSource)(nil)

// New returns a LogSource over openers, processed in order.
func New(opts Options, openers ...Opener) *LogSource {
	return &LogSource{openers: openers, opts: opts}
}

// NewFiles reads the given files in order, or stdin when paths is empty.
func NewFiles(opts Options, paths []string) *LogSource {
	if len(paths) == 0 {
		return New(opts, ReaderOpener(os.Stdin))
	}
	openers := make([]Opener, len(paths))
	for i, p := range paths {
		openers[i] = FileOpener(p)
	}
	return New(opts, openers...)
}

// Skipped reports how many malformed lines have been ignored since the last Reset.
func (s *LogSource) Skipped() int { return s.skipped }

// Reset rewinds to the start of the first input.
func (s *LogSource) Reset() error {
	if err := s.Close(); err != nil {
		return err
	}
	s.idx = 0
	s.skipped = 0
	s.open = map[string]*Event{}
	s.queue = nil
	s.flushing = false
	s.started = true
	return nil
}

// Close releases the currently open input.
func (s *LogSource) Close() error {
	s.scanner = nil
	if s.cur == nil {
		return nil
	}
	err := s.cur.Close()
	s.cur = nil
	return err
}

// NextEvent returns the next event inside the configured window, or io.EOF.
func (s *LogSource) NextEvent(ctx context.Context) (normalize.Event, error) {
	if !s.started {
		if err := s.Reset(); err != nil {
			return nil, err
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		evt, err := s.readEvent()
		if err != nil {
			return nil, err
		}
		if s.opts.Window.Contains(evt.stamp()) {
			return evt, nil
		}
		logger.L().Debugw("event outside time window", "event_id", evt.id())
	}
}

// readEvent returns the oldest event that is complete: its EOE record was
// seen, too many newer events are open, or its input ended.
func (s *LogSource) readEvent() (*Event, error) {
	for {
		if evt := s.ready(); evt != nil {
			return evt, nil
		}
		rec, err := s.nextRecord()
		if errors.Is(err, io.EOF) {
			if len(s.queue) > 0 {
				s.flushing = true
				continue
			}
			if s.idx < len(s.openers) {
				continue
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		s.add(rec)
	}
}

// add files rec under its event id. An EOE record closes its event.
func (s *LogSource) add(rec *Record) {
	evt, ok := s.open[rec.id]
	if rec.typeName == eoeType {
		if ok {
			evt.done = true
			delete(s.open, rec.id)
		}
		return
	}
	if !ok {
		evt = &Event{}
		s.open[rec.id] = evt
		s.queue = append(s.queue, evt)
	}
	evt.records = append(evt.records, rec)
}

// ready pops the head of the queue if it may be emitted.
func (s *LogSource) ready() *Event {
	if len(s.queue) == 0 {
		s.flushing = false
		return nil
	}
	head := s.queue[0]
	if !head.done && !s.flushing && len(s.queue) <= maxOpenEvents {
		return nil
	}
	s.queue[0] = nil
	s.queue = s.queue[1:]
	if id := head.id(); s.open[id] == head {
		delete(s.open, id)
	}
	return head
}

// nextRecord returns the next well-formed record. Input boundaries surface as
// io.EOF once per input so that events never span two files.
func (s *LogSource) nextRecord() (*Record, error) {
	for {
		if s.scanner == nil {
			if s.idx >= len(s.openers) {
				return nil, io.EOF
			}
			if err := s.open(); err != nil {
				return nil, err
			}
		}
		if s.scanner.Scan() {
			s.line++
			text := s.scanner.Text()
			if text == "" {
				continue
			}
			rec, err := ParseLine(text)
			if err != nil {
				s.skipped++
				logger.L().Debugw("skipping line", "input", s.idx, "line_number", s.line, "err", err.Error())
				continue
			}
			return rec, nil
		}
		err := s.scanner.Err()
		s.idx++
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return nil, io.EOF
	}
}

func (s *LogSource) open() error {
	rc, err := s.openers[s.idx]()
	if err != nil {
		return fmt.Errorf("open input %d: %w", s.idx, err)
	}
	s.cur = rc
	s.scanner = newAuditScanner(rc)
	s.line = 0
	return nil
}

// newAuditScanner allows records of up to 1MB, enough for long EXECVE lines.
func newAuditScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return sc
}
