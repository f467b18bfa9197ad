package monitoring

// CartMetrics groups the counters for a single cart operation's lifecycle so
// handlers record attempts and outcomes without reaching into metric vars.
type CartMetrics struct {
	operation string
}

func NewCartMetrics(operation string) *CartMetrics {
	return &CartMetrics{
		operation: operation,
	}
}

func (m *CartMetrics) RecordAdd(merged bool) {
	RecordCartAdd(merged)
}

func (m *CartMetrics) RecordUpdate() {
	RecordCartUpdate()
}

func (m *CartMetrics) RecordRemoval() {
	RecordCartRemoval()
}

func (m *CartMetrics) RecordFailure() {
	RecordCartFailure(m.operation)
}
