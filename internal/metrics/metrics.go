package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fwpboutique/crystalshop/internal/domain"
)

// Checkout outcome labels
const (
	ResultOK         = "ok"
	ResultInvalid    = "invalid"
	ResultFailed     = "failed"
	ResultSkipped    = "skipped"
	ResultDuplicated = "duplicate"
)

// Metrics holds the storefront collectors. A nil *Metrics records nothing.
type Metrics struct {
	submissions *prometheus.CounterVec
	sheetSync   *prometheus.CounterVec
	analyses    *prometheus.CounterVec
	orderTotal  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_submissions_total",
			Help:      "Count of checkout submissions by flow and outcome.",
		}, []string{"flow", "result"}),
		sheetSync: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheet_sync_total",
			Help:      "Count of spreadsheet mirror attempts by outcome.",
		}, []string{"result"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_requests_total",
			Help:      "Count of analysis service calls by outcome.",
		}, []string{"result"}),
		orderTotal: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_total_price",
			Help:      "Frozen order totals in currency units.",
			Buckets:   []float64{500, 1000, 2000, 3000, 5000, 8000, 12000, 20000},
		}, []string{"flow"}),
	}
	reg.MustRegister(m.submissions, m.sheetSync, m.analyses, m.orderTotal)
	return m
}

// Submission records a checkout outcome
func (m *Metrics) Submission(flow domain.StrategyType, result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(string(flow), result).Inc()
}

// SubmissionCounter returns the counter behind Submission for one label pair
func (m *Metrics) SubmissionCounter(flow domain.StrategyType, result string) prometheus.Counter {
	return m.submissions.WithLabelValues(string(flow), result)
}

// SheetSyncCounter returns the counter behind SheetSync for one result
func (m *Metrics) SheetSyncCounter(result string) prometheus.Counter {
	return m.sheetSync.WithLabelValues(result)
}

// OrderTotal observes a frozen total
func (m *Metrics) OrderTotal(flow domain.StrategyType, total int64) {
	if m == nil {
		return
	}
	m.orderTotal.WithLabelValues(string(flow)).Observe(float64(total))
}

// SheetSync records a mirror attempt
func (m *Metrics) SheetSync(result string) {
	if m == nil {
		return
	}
	m.sheetSync.WithLabelValues(result).Inc()
}

// Analysis records an analysis call
func (m *Metrics) Analysis(result string) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(result).Inc()
}
