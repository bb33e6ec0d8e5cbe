package metric

import "github.com/prometheus/client_golang/prometheus"

// TableStats is the read side of the table needed by the collector.
type TableStats interface {
	Revision() int64
	Len() int
}

// TableCollector reports table revision and row count at scrape time.
type TableCollector struct {
	stats TableStats

	revision *prometheus.Desc
	rows     *prometheus.Desc
}

// NewTableCollector creates a collector over the given table.
func NewTableCollector(stats TableStats) *TableCollector {
	return &TableCollector{
		stats: stats,
		revision: prometheus.NewDesc(
			namespace+"_table_revision",
			"Current global revision of the table.",
			nil, nil,
		),
		rows: prometheus.NewDesc(
			namespace+"_table_rows",
			"Number of rows currently stored.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *TableCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.revision
	ch <- c.rows
}

// Collect implements prometheus.Collector.
func (c *TableCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.revision, prometheus.GaugeValue, float64(c.stats.Revision()))
	ch <- prometheus.MustNewConstMetric(c.rows, prometheus.GaugeValue, float64(c.stats.Len()))
}
