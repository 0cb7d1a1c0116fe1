package statistics

import (
	"github.com/markusressel/pifan2go/internal/curves"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemCurve = "curve"

type CurveCollector struct {
	curves []*curves.HysteresisCurve
	duty   *prometheus.Desc
	active *prometheus.Desc
}

func NewCurveCollector(curves []*curves.HysteresisCurve) *CurveCollector {
	return &CurveCollector{
		curves: curves,
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemCurve, "duty"),
			"Duty cycle most recently computed by the curve in percent",
			[]string{"id"}, nil,
		),
		active: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemCurve, "active"),
			"Whether the curve currently keeps the fan running (1) or off (0)",
			[]string{"id"}, nil,
		),
	}
}

func (collector *CurveCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.duty
	ch <- collector.active
}

// Collect implements required collect function for all prometheus collectors
func (collector *CurveCollector) Collect(ch chan<- prometheus.Metric) {
	for _, curve := range collector.curves {
		curveId := curve.GetId()
		duty, active := curve.CurrentState()
		activeValue := 0.0
		if active {
			activeValue = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, duty, curveId)
		ch <- prometheus.MustNewConstMetric(collector.active, prometheus.GaugeValue, activeValue, curveId)
	}
}
