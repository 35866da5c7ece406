package metric

import "github.com/prometheus/client_golang/prometheus"

// Collector reports the size of the active redaction policy at scrape time.
type Collector struct {
	rules     func() int
	rulesDesc *prometheus.Desc
}

// NewCollector creates a collector reading the rule count from rules.
func NewCollector(rules func() int) *Collector {
	return &Collector{
		rules: rules,
		rulesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "policy_rules"),
			"Field rules in the active redaction policy.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.rulesDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	n := 0
	if c.rules != nil {
		n = c.rules()
	}
	ch <- prometheus.MustNewConstMetric(c.rulesDesc, prometheus.GaugeValue, float64(n))
}
