package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	m := New(nil)
	m.CacheHit("dictionary")
	m.CacheHit("dictionary")
	m.CacheMiss("translation")
	m.LookupFailure("translation")
	m.AmbiguousClass()
	m.Sentence(4, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("dictionary")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("translation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupFailuresTotal.WithLabelValues("translation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AmbiguousClassTotal))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.UnitsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SentencesTotal))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheHit("dictionary")
		m.Sentence(1, time.Second)
	})
}

func TestHandler(t *testing.T) {
	m := New(nil)
	m.Sentence(2, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "japanesereader_units_total 2")
}
