package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCheck(t *testing.T) {
	m := New()

	m.RecordCheck(false, []string{"destructive_command", "possible_exfil"}, 2)
	m.RecordCheck(true, nil, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.checksTotal.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checksTotal.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.violationsTotal.WithLabelValues("destructive_command")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.violationsTotal.WithLabelValues("possible_exfil")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ruleHitsTotal))
}

func TestRecordReload(t *testing.T) {
	m := New()

	m.RecordReload(nil)
	m.RecordReload(errors.New("boom"))
	m.RecordReload(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.configReloads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.configReloads.WithLabelValues("error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordCheck(true, []string{"x"}, 1)
	m.RecordReload(nil)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordCheck(false, []string{"out_of_scope_assets"}, 0)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `policygate_violations_total{tag="out_of_scope_assets"} 1`))
}
