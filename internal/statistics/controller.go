package statistics

import (
	"github.com/markusressel/pifan2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controllers []controller.FanController

	readErrorCount          *prometheus.Desc
	writeErrorCount         *prometheus.Desc
	appliedChangeCount      *prometheus.Desc
	consecutiveFailureCount *prometheus.Desc
}

func NewControllerCollector(controllers []controller.FanController) *ControllerCollector {
	return &ControllerCollector{
		controllers: controllers,
		readErrorCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "read_error_count"),
			"Counter for failed temperature sensor reads of this controller",
			[]string{"id"}, nil,
		),
		writeErrorCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "write_error_count"),
			"Counter for failed duty cycle writes of this controller",
			[]string{"id"}, nil,
		),
		appliedChangeCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "applied_change_count"),
			"Counter for duty cycle changes this controller has applied to its fan",
			[]string{"id"}, nil,
		),
		consecutiveFailureCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "consecutive_failure_count"),
			"Number of consecutive update cycles that have failed for this controller",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.readErrorCount
	ch <- collector.writeErrorCount
	ch <- collector.appliedChangeCount
	ch <- collector.consecutiveFailureCount
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	for _, contr := range collector.controllers {
		fanId := contr.GetFanId()
		stats := contr.GetStatistics()
		ch <- prometheus.MustNewConstMetric(collector.readErrorCount, prometheus.CounterValue, float64(stats.TransientReadErrors), fanId)
		ch <- prometheus.MustNewConstMetric(collector.writeErrorCount, prometheus.CounterValue, float64(stats.TransientWriteErrors), fanId)
		ch <- prometheus.MustNewConstMetric(collector.appliedChangeCount, prometheus.CounterValue, float64(stats.AppliedChanges), fanId)
		ch <- prometheus.MustNewConstMetric(collector.consecutiveFailureCount, prometheus.GaugeValue, float64(stats.ConsecutiveFailures), fanId)
	}
}
