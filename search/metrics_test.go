package search

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMonitor(t *testing.T) {
	reg := prometheus.NewRegistry()
	monitor, err := NewMetricsMonitor(reg)
	require.NoError(t, err)

	engine := NewEngine(runningCorpus(), WithEngineMonitor(monitor))
	engine.HybridSearch("running", 2, 0.5)
	engine.HybridSearch("coffee", 2, 0.5)
	engine.KeywordSearch("running", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(monitor.requests.WithLabelValues(string(ModeHybrid))))
	assert.Equal(t, 1.0, testutil.ToFloat64(monitor.requests.WithLabelValues(string(ModeKeyword))))
	assert.Equal(t, 0.0, testutil.ToFloat64(monitor.requests.WithLabelValues(string(ModeBM25))))

	// Keyword search for "running" yields two candidates, plus whatever the hybrid calls produced.
	assert.GreaterOrEqual(t, testutil.ToFloat64(monitor.candidates.WithLabelValues("lexical")), 2.0)
	assert.Greater(t, testutil.ToFloat64(monitor.candidates.WithLabelValues("semantic")), 0.0)

	assert.Equal(t, 2, testutil.CollectAndCount(monitor.duration))
	assert.Equal(t, 2, testutil.CollectAndCount(monitor.results))
}

func TestNewMetricsMonitor_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetricsMonitor(reg)
	require.NoError(t, err)

	_, err = NewMetricsMonitor(reg)
	assert.Error(t, err)
}

type recordingMonitor struct {
	noopMonitor
	calls []string
}

func (m *recordingMonitor) Start(_ string, mode Mode) { m.calls = append(m.calls, "start:"+string(mode)) }
func (m *recordingMonitor) AfterMerge(_ int)          { m.calls = append(m.calls, "merge") }

func TestEngine_MonitorHooks(t *testing.T) {
	monitor := &recordingMonitor{}
	engine := NewEngine(runningCorpus(), WithEngineMonitor(monitor))

	engine.HybridSearch("running", 2, 0.5)
	engine.SemanticSearch("running", 2)
	engine.CombinedSearch("running", 2)

	assert.Equal(t, []string{"start:hybrid", "merge", "start:semantic", "start:combined", "merge"}, monitor.calls)
}
