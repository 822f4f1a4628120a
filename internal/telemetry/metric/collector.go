package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tabbi89/ConfigServiceProvider/internal/infra/confloader"
)

// StatsSource is implemented by *confloader.Store.
type StatsSource interface {
	Stats() confloader.Stats
}

// Collector reports the current size of a store at scrape time.
type Collector struct {
	src StatsSource

	treeKeys *prometheus.Desc
	sources  *prometheus.Desc
}

// NewCollector creates a collector over src.
func NewCollector(src StatsSource) *Collector {
	return &Collector{
		src: src,
		treeKeys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "tree_keys"),
			"Leaf keys in the merged configuration tree",
			nil, nil,
		),
		sources: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "sources"),
			"Files added to the store, including empty ones",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.treeKeys
	ch <- c.sources
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.treeKeys, prometheus.GaugeValue, float64(stats.Keys))
	ch <- prometheus.MustNewConstMetric(c.sources, prometheus.GaugeValue, float64(stats.Sources))
}
