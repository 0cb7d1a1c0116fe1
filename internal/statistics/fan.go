package statistics

import (
	"github.com/markusressel/pifan2go/internal/fans"
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

type FanCollector struct {
	fans      []fans.Fan
	duty      *prometheus.Desc
	frequency *prometheus.Desc
}

func NewFanCollector(fans []fans.Fan) *FanCollector {
	return &FanCollector{
		fans: fans,
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "duty"),
			"Current duty cycle of the fan in percent",
			[]string{"id"}, nil,
		),
		frequency: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "pwm_frequency"),
			"PWM frequency of the fan in Hz",
			[]string{"id"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.duty
	ch <- collector.frequency
}

//Collect implements required collect function for all promehteus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	for _, fan := range collector.fans {
		fanId := fan.GetId()
		ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, fan.GetDuty(), fanId)
		ch <- prometheus.MustNewConstMetric(collector.frequency, prometheus.GaugeValue, float64(fan.GetFrequency()), fanId)
	}
}
