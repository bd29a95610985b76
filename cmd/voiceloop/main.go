// voiceloop is an interactive speech capture and transcription loop. It
// provisions the SenseVoice model bundle into the user cache on first run,
// then records from the microphone on each enter press, transcribes the
// finalized buffer, and prints the transcript to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/voiceloop/asr"
	"github.com/kbukum/voiceloop/asr/sensevoice"
	"github.com/kbukum/voiceloop/capture"
	"github.com/kbukum/voiceloop/config"
	"github.com/kbukum/voiceloop/errors"
	"github.com/kbukum/voiceloop/logger"
	"github.com/kbukum/voiceloop/loop"
	"github.com/kbukum/voiceloop/modelcache"
	"github.com/kbukum/voiceloop/observability"
	"github.com/kbukum/voiceloop/provider"
	"github.com/kbukum/voiceloop/version"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("voiceloop", version.GetShortVersion())
		return
	}

	if err := run(*configPath); err != nil {
		logger.Error("fatal error", logger.ErrorFields("run", err))
		if appErr, ok := errors.AsAppError(err); ok {
			fmt.Fprintf(os.Stderr, "voiceloop: %s: %s\n", appErr.Code, appErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "voiceloop: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(configPath string) error {
	var opts []config.LoaderOption
	if configPath != "" {
		opts = append(opts, config.WithConfigFile(configPath))
	}
	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.WithComponent("main")
	log.Info("starting", logger.Fields(
		"version", version.GetShortVersion(),
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Telemetry.Enabled {
		shutdown, m, err := initTelemetry(ctx, cfg)
		if err != nil {
			return err
		}
		defer shutdown()
		metrics = m
	}

	loc, err := modelcache.NewProvisioner(cfg.Model).Ensure(ctx)
	if err != nil {
		return err
	}

	models := provider.NewRegistry[asr.Model]()
	models.RegisterFactory(sensevoice.BackendName, sensevoice.Factory)
	model, err := models.Create(cfg.Engine.Backend, map[string]any{
		"model_dir":     loc.Dir,
		"sample_rate":   cfg.Engine.SampleRate,
		"infer_timeout": cfg.Engine.InferTimeout,
	})
	if err != nil {
		return err
	}
	if !model.IsAvailable(ctx) {
		return errors.ModelLoadFailed(cfg.Engine.Backend,
			fmt.Errorf("backend unavailable, check binary and model directory"))
	}

	engine, err := asr.NewEngine(model, cfg.Engine)
	if err != nil {
		return err
	}
	engine.WithMetrics(metrics)

	src, err := capture.NewExecSource(capture.ExecSourceConfig{
		Device:     cfg.Capture.Device,
		SampleRate: cfg.Capture.DeviceSampleRate,
		Channels:   cfg.Capture.Channels,
		FrameSize:  cfg.Capture.FrameSize,
	})
	if err != nil {
		return errors.CaptureFailed(err)
	}
	session, err := capture.NewRecorder(src, cfg.Capture)
	if err != nil {
		_ = src.Close()
		return err
	}

	err = loop.New(session, engine, os.Stdin, os.Stdout).Run(ctx)
	if err == context.Canceled {
		log.Info("interrupted")
		return nil
	}
	return err
}

// initTelemetry wires the OTLP exporters and the pipeline instruments.
func initTelemetry(ctx context.Context, cfg *config.Config) (func(), *observability.Metrics, error) {
	ver := version.GetVersionInfo()

	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: ver.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
	})
	if err != nil {
		return nil, nil, err
	}

	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: ver.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return nil, nil, err
	}

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, nil, err
	}

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("tracer shutdown failed", logger.ErrorFields("shutdown", err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn("meter shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}
	return shutdown, metrics, nil
}
