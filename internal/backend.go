package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/pifan2go/internal/api"
	"github.com/markusressel/pifan2go/internal/configuration"
	"github.com/markusressel/pifan2go/internal/controller"
	"github.com/markusressel/pifan2go/internal/curves"
	"github.com/markusressel/pifan2go/internal/fans"
	"github.com/markusressel/pifan2go/internal/persistence"
	"github.com/markusressel/pifan2go/internal/sensors"
	"github.com/markusressel/pifan2go/internal/statistics"
	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	if configuration.CurrentConfig.Fan.Type == configuration.FanTypeGpio && os.Geteuid() != 0 {
		ui.Warning("Driving a GPIO pin usually requires root permissions, expect pifan2go to fail if /dev/gpiomem is not accessible")
	}

	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	InitializeObjects()

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if configuration.CurrentConfig.Statistics.Enabled {
			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = configuration.DefaultStatisticsPort
			}
			addr := fmt.Sprintf(":%d", port)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: addr, Handler: mux}

			g.Add(func() error {
				ui.Info("Starting statistics server on %s", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if configuration.CurrentConfig.Api.Enabled {
			// === REST Api
			restServer := api.CreateRestService()
			addr := fmt.Sprintf("%s:%d", configuration.CurrentConfig.Api.Host, configuration.CurrentConfig.Api.Port)

			g.Add(func() error {
				ui.Info("Starting api server on %s", addr)
				if err := restServer.Start(addr); err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := restServer.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping api server: %v", err)
				} else {
					ui.Info("Api server stopped.")
				}
			})
		}
	}
	{
		// === fan controllers
		var controllers []controller.FanController
		for _, fan := range fans.FanMap.Items() {
			f := fan

			sensor, err := sensors.GetSensor(configuration.CurrentConfig.Sensor.ID)
			if err != nil {
				ui.Fatal("Sensor %s not found", configuration.CurrentConfig.Sensor.ID)
			}
			curve, err := curves.GetCurve(configuration.CurrentConfig.Curve.ID)
			if err != nil {
				ui.Fatal("Curve %s not found", configuration.CurrentConfig.Curve.ID)
			}

			fanController := controller.NewFanController(
				pers,
				f,
				sensor,
				curve,
				configuration.CurrentConfig.WaitTime,
				configuration.CurrentConfig.TempRollingWindowSize,
			)
			controllers = append(controllers, fanController)

			g.Add(func() error {
				err := fanController.Run(ctx)
				ui.Info("Fan controller for fan %s stopped.", f.GetId())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Something went wrong: %v", err)
				}
			})
		}

		if fans.FanMap.Count() == 0 {
			ui.Fatal("No valid fan configurations, exiting.")
		}

		statistics.Register(statistics.NewControllerCollector(controllers))
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	err := g.Run()
	closeFans()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

func InitializeObjects() {
	config := configuration.CurrentConfig

	sensor, err := sensors.NewSensor(config.Sensor)
	if err != nil {
		ui.Fatal("Unable to process sensor configuration: %v", err)
	}

	currentValue, err := sensor.GetValue()
	if err != nil {
		ui.Warning("Error reading sensor %s: %v", sensor.GetId(), err)
	} else {
		sensor.SetMovingAvg(currentValue)
	}
	sensors.SensorMap.Set(sensor.GetId(), sensor)
	statistics.Register(statistics.NewSensorCollector([]sensors.Sensor{sensor}))

	curve := curves.NewHysteresisCurve(config.Curve)
	curves.CurveMap.Set(curve.GetId(), curve)
	statistics.Register(statistics.NewCurveCollector([]*curves.HysteresisCurve{curve}))

	fan, err := fans.NewFan(config.Fan)
	if err != nil {
		ui.Fatal("Unable to process fan configuration: %v", err)
	}
	if err := fan.Init(); err != nil {
		ui.Fatal("Unable to set up fan %s: %v", fan.GetId(), err)
	}
	fans.FanMap.Set(fan.GetId(), fan)
	statistics.Register(statistics.NewFanCollector([]fans.Fan{fan}))
}

func closeFans() {
	for _, fan := range fans.FanMap.Items() {
		fan.Close()
	}
}
