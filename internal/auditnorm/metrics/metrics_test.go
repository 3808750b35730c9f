package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
)

func TestObserveRecord(t *testing.T) {
	m := New()
	m.ObserveRecord(normalize.Line{EventOrdinal: 1, RecordOrdinal: 1, Category: normalize.Syscall})
	m.ObserveRecord(normalize.Line{EventOrdinal: 1, RecordOrdinal: 2, Category: normalize.Place})
	m.ObserveRecord(normalize.Line{EventOrdinal: 1, RecordOrdinal: 3, Category: normalize.Place})
	m.ObserveRecord(normalize.Line{EventOrdinal: 2, RecordOrdinal: 1, Category: normalize.User})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("Place")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("Syscall")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("Execve")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.SkippedLinesTotal.Add(3)
	m.ObserveRecord(normalize.Line{RecordOrdinal: 1, Category: normalize.Generic})

	path := filepath.Join(t.TempDir(), "auditnorm.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "auditnorm_skipped_lines_total 3")
	assert.Contains(t, string(data), `auditnorm_records_total{category="Generic"} 1`)
	assert.Contains(t, string(data), `auditnorm_records_total{category="Socket"} 0`)
}
