package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/m7mdaymn/SmartmirrorUi/common/logger"
	"github.com/m7mdaymn/SmartmirrorUi/internal/config"
	"github.com/m7mdaymn/SmartmirrorUi/internal/models"
	"github.com/m7mdaymn/SmartmirrorUi/internal/sensorapi"
)

const usage = `Usage: smartmirror-sensors <command>

Commands:
  status               show which sensors are enabled
  enable-all           enable every sensor
  disable-all          disable every sensor
  enable <sensor>      enable one sensor (dht22, mlx90614, mq135, max30105)
  disable <sensor>     disable one sensor
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logpkg.NewLogger(cfg.Log.Level, cfg.Log.Format, "smartmirror-sensors")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client := sensorapi.NewClient(sensorapi.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		RetryCount: cfg.API.RetryCount,
	}, log)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch cmd := os.Args[1]; cmd {
	case "status":
		st, err := client.GetControlStatus(ctx)
		if err != nil {
			log.Fatal("Failed to read sensor status", zap.Error(err))
		}
		printStatus(st)
	case "enable-all", "disable-all":
		var resp *models.ControlResponse
		if cmd == "enable-all" {
			resp, err = client.EnableAll(ctx)
		} else {
			resp, err = client.DisableAll(ctx)
		}
		if err != nil {
			log.Fatal("Failed to control sensors", zap.String("command", cmd), zap.Error(err))
		}
		fmt.Println(resp.Message)
		if resp.Sensors != nil {
			printStatus(resp.Sensors)
		}
	case "enable", "disable":
		if len(os.Args) < 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		sensor := os.Args[2]
		if _, err := client.SetSensorEnabled(ctx, sensor, cmd == "enable"); err != nil {
			log.Fatal("Failed to toggle sensor", zap.String("sensor", sensor), zap.Error(err))
		}
		fmt.Printf("%s %sd\n", sensor, cmd)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func printStatus(st *models.SensorStatus) {
	rows := []struct {
		name string
		on   bool
	}{
		{models.SensorRoom, st.DHT22},
		{models.SensorBodyTemp, st.MLX90614},
		{models.SensorGas, st.MQ135},
		{models.SensorHeart, st.MAX30105},
	}
	for _, r := range rows {
		state := "off"
		if r.on {
			state = "on"
		}
		fmt.Printf("%-9s %s\n", r.name, state)
	}
}
