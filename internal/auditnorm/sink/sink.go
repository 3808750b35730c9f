package sink

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/config"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
)

// Sink receives normalized lines in order.
type Sink interface {
	Write(ctx context.Context, line normalize.Line) error
	Close() error
}

// New builds the sink selected by cfg.Output.Sink.
func New(ctx context.Context, cfg *config.Config) (Sink, error) {
	out := cfg.Output
	switch out.Sink {
	case "", "stdout":
		return NewWriterSink(os.Stdout, nil), nil
	case "file":
		if out.File == "" {
			return nil, fmt.Errorf("file sink requires output.file")
		}
		f, err := os.Create(out.File)
		if err != nil {
			return nil, fmt.Errorf("create output: %w", err)
		}
		return NewWriterSink(f, f), nil
	case "postgres", "pg", "postgresql", "mysql":
		return OpenSQL(ctx, out.Sink, out.DSN, out.Table)
	case "kafka":
		return NewKafkaSink(out.Kafka.Brokers, out.Kafka.Topic)
	default:
		return nil, fmt.Errorf("unsupported sink: %s", out.Sink)
	}
}

// WriterSink writes each line followed by a newline.
type WriterSink struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewWriterSink buffers writes to w. closer, if non-nil, is closed by Close.
func NewWriterSink(w io.Writer, closer io.Closer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w), closer: closer}
}

func (s *WriterSink) Write(_ context.Context, line normalize.Line) error {
	if _, err := s.w.WriteString(line.Text); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}

func (s *WriterSink) Close() error {
	err := s.w.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
