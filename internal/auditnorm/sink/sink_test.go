package sink

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/config"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
)

var sampleLine = normalize.Line{
	EventOrdinal:  3,
	RecordCount:   2,
	RecordOrdinal: 1,
	Category:      normalize.Socket,
	Text:          "3:2:1 Socket SOCKADDR 1.000:9 (null) 0 0 0200",
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf, nil)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, sampleLine))
	require.NoError(t, s.Write(ctx, sampleLine))
	require.NoError(t, s.Close())
	assert.Equal(t, sampleLine.Text+"\n"+sampleLine.Text+"\n", buf.String())
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	cfg := &config.Config{Output: config.OutputCfg{Sink: "file", File: path}}

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, s.Write(context.Background(), sampleLine))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleLine.Text+"\n", string(data))
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		out  config.OutputCfg
	}{
		{"unknown sink", config.OutputCfg{Sink: "carrier-pigeon"}},
		{"file without path", config.OutputCfg{Sink: "file"}},
		{"postgres without dsn", config.OutputCfg{Sink: "postgres", Table: "t"}},
		{"mysql without dsn", config.OutputCfg{Sink: "mysql", Table: "t"}},
		{"kafka without brokers", config.OutputCfg{Sink: "kafka", Kafka: config.KafkaCfg{Topic: "t"}}},
		{"kafka without topic", config.OutputCfg{Sink: "kafka", Kafka: config.KafkaCfg{Brokers: []string{"k:9092"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), &config.Config{Output: tt.out})
			assert.Error(t, err)
		})
	}
}

func TestNew_Stdout(t *testing.T) {
	s, err := New(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &WriterSink{}, s)
}

type fakeExec struct {
	queries []string
	args    [][]any
	closed  bool
	err     error
}

func (f *fakeExec) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	return nil, f.err
}

func (f *fakeExec) Close() error {
	f.closed = true
	return nil
}

func TestSQLSink_Postgres(t *testing.T) {
	db := &fakeExec{}
	s, err := newSQLSink(context.Background(), db, "postgres", "audit.normalized")
	require.NoError(t, err)
	require.Len(t, db.queries, 1)
	assert.True(t, strings.HasPrefix(db.queries[0], "CREATE TABLE IF NOT EXISTS audit.normalized"))

	require.NoError(t, s.Write(context.Background(), sampleLine))
	require.Len(t, db.queries, 2)
	assert.Contains(t, db.queries[1], "VALUES ($1, $2, $3, $4, $5)")
	assert.Equal(t, []any{3, 2, 1, "Socket", sampleLine.Text}, db.args[1])

	require.NoError(t, s.Close())
	assert.True(t, db.closed)
}

func TestSQLSink_MySQL(t *testing.T) {
	db := &fakeExec{}
	s, err := newSQLSink(context.Background(), db, "mysql", "audit_normalized")
	require.NoError(t, err)
	require.NoError(t, s.Write(context.Background(), sampleLine))
	assert.Contains(t, db.queries[1], "VALUES (?, ?, ?, ?, ?)")
}

func TestSQLSink_Errors(t *testing.T) {
	_, err := newSQLSink(context.Background(), &fakeExec{}, "postgres", "bad; DROP TABLE x")
	assert.Error(t, err)

	_, err = newSQLSink(context.Background(), &fakeExec{err: errors.New("denied")}, "postgres", "t")
	assert.Error(t, err)

	db := &fakeExec{}
	s, err := newSQLSink(context.Background(), db, "postgres", "t")
	require.NoError(t, err)
	db.err = errors.New("connection reset")
	assert.Error(t, s.Write(context.Background(), sampleLine))
}

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaSink(t *testing.T) {
	w := &fakeWriter{}
	s := &KafkaSink{writer: w}

	require.NoError(t, s.Write(context.Background(), sampleLine))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "3", string(w.msgs[0].Key))
	assert.Equal(t, sampleLine.Text, string(w.msgs[0].Value))

	require.NoError(t, s.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaSink(t *testing.T) {
	s, err := NewKafkaSink([]string{"localhost:9092"}, "auditnorm")
	require.NoError(t, err)
	kw, ok := s.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "auditnorm", kw.Topic)
}
