// Package metrics собирает счётчики операций над подписками в собственный
// реестр Prometheus и выгружает их в textfile для node_exporter.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "subtrack"

// Статусы операций.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Collector счётчики операций и размер хранилища.
type Collector struct {
	registry *prometheus.Registry

	Operations *prometheus.CounterVec
	Records    prometheus.Gauge
}

// New создаёт Collector с отдельным реестром.
func New() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of subscription operations by kind and status",
		}, []string{"operation", "status"}),
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Number of subscription records seen in the store on the last load",
		}),
	}
	reg.MustRegister(c.Operations, c.Records)

	return c
}

// ObserveOperation увеличивает счётчик операции.
func (c *Collector) ObserveOperation(operation, status string) {
	c.Operations.WithLabelValues(operation, status).Inc()
}

// SetRecords фиксирует количество записей в хранилище.
func (c *Collector) SetRecords(n int) {
	c.Records.Set(float64(n))
}

// Registry возвращает реестр, в котором зарегистрированы метрики.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile атомарно записывает метрики в файл формата textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	const op = "metrics.WriteTextfile"
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
