package observability

import "time"

// Timer measures one run of a named operation. Every stop records the
// duration and bumps the total; failed runs also bump the error counter.
type Timer struct {
	metrics   Metrics
	operation string
	start     time.Time
}

// StartTimer starts timing operation. A nil metrics records nothing.
func StartTimer(metrics Metrics, operation string) *Timer {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Timer{metrics: metrics, operation: operation, start: time.Now()}
}

// Stop records the run with err as its outcome and returns its duration.
func (t *Timer) Stop(err error) time.Duration {
	duration := time.Since(t.start)
	op := T("operation", t.operation)

	t.metrics.Timing(MetricOperationDuration, duration, op)
	t.metrics.Counter(MetricOperationTotal, 1, op)
	if err != nil {
		t.metrics.Counter(MetricOperationErrors, 1, op)
	}
	return duration
}
