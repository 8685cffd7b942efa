package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/fwpboutique/crystalshop/internal/domain"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("test", reg)

	m.Submission(domain.StrategyCustom, ResultOK)
	m.Submission(domain.StrategyCustom, ResultOK)
	m.Submission(domain.StrategyStandard, ResultInvalid)
	m.SheetSync(ResultFailed)
	m.Analysis(ResultOK)
	m.OrderTotal(domain.StrategyCustom, 2860)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SubmissionCounter(domain.StrategyCustom, ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionCounter(domain.StrategyStandard, ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sheetSync.WithLabelValues(ResultFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.orderTotal))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Submission(domain.StrategyStandard, ResultOK)
		m.OrderTotal(domain.StrategyStandard, 100)
		m.SheetSync(ResultOK)
		m.Analysis(ResultFailed)
	})
}
