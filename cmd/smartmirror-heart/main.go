package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	logpkg "github.com/m7mdaymn/SmartmirrorUi/common/logger"
	"github.com/m7mdaymn/SmartmirrorUi/internal/classify"
	"github.com/m7mdaymn/SmartmirrorUi/internal/config"
	"github.com/m7mdaymn/SmartmirrorUi/internal/service"
	"github.com/m7mdaymn/SmartmirrorUi/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logpkg.NewLogger(cfg.Log.Level, cfg.Log.Format, "smartmirror-heart")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	svc, err := service.NewHeartService(cfg, log)
	if err != nil {
		log.Fatal("Failed to create heart service", zap.Error(err))
	}
	defer svc.Close()

	// SIGINT leaves the measurement: polling stops and the sensor is disabled
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var last session.State
	snap, err := svc.Measure(ctx, func(s session.Snapshot) {
		if s.State == last && s.State != session.StateMeasuring {
			return
		}
		last = s.State
		printProgress(s)
	})
	if err != nil {
		log.Warn("Measurement did not complete", zap.Error(err))
	}

	switch snap.State {
	case session.StateCompleted:
		printResult(snap)
	case session.StateError:
		fmt.Fprintln(os.Stderr, snap.ErrorMessage)
		os.Exit(2)
	default:
		os.Exit(130)
	}
}

func printProgress(s session.Snapshot) {
	switch s.State {
	case session.StateInitializing:
		fmt.Println("Initializing sensor...")
	case session.StateWaitingFinger:
		fmt.Println("Place your finger on the sensor")
	case session.StateFingerDetected:
		fmt.Println("Finger detected, hold still")
	case session.StateMeasuring:
		fmt.Printf("\rMeasuring %3d%%  %2.0fs left", s.Progress, s.TimeRemaining.Seconds())
	}
}

func printResult(s session.Snapshot) {
	r := s.Result
	fmt.Println()
	fmt.Printf("%s\n", classify.HeartRateStatusText(r.HeartRate))
	fmt.Printf("Heart rate:     %d BPM (%s)\n", r.HeartRate, classify.HeartRateCategory(r.HeartRate))
	fmt.Printf("Blood pressure: %d/%d mmHg (%s)\n", r.Systolic, r.Diastolic,
		classify.BloodPressureCategory(r.Systolic, r.Diastolic))
	if r.SpO2 != nil {
		fmt.Printf("SpO2:           %d%%\n", *r.SpO2)
	}
	if s.SessionID != nil {
		fmt.Printf("Session:        %d\n", *s.SessionID)
	}
}
