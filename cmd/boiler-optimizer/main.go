package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/boiler-optimizer/internal/client"
	"github.com/iwvelando/boiler-optimizer/internal/config"
	"github.com/iwvelando/boiler-optimizer/internal/controller"
	"github.com/iwvelando/boiler-optimizer/internal/logging"
	"github.com/iwvelando/boiler-optimizer/internal/optimize"
	"github.com/iwvelando/boiler-optimizer/internal/render"
	"github.com/iwvelando/boiler-optimizer/pkg/output"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configLocation := flag.String("config", "", "path to configuration file")
	endpoint := flag.String("endpoint", "", "optimization server URL override; empty runs in-process")
	feedwaterTemp := flag.String("feedwater-temp", "", "feedwater temperature in °C")
	steamPressure := flag.String("steam-pressure", "", "steam pressure in bar")
	fuelFlow := flag.String("fuel-flow", "", "fuel flow in kg/s")
	efficiency := flag.String("efficiency", "", "combustion efficiency in percent")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	chartDir := flag.String("chart-dir", "", "directory for rendered chart specs override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	_ = godotenv.Load()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	override(&conf.Output.Format, *outputFormatFlag)
	override(&conf.Client.Endpoint, *endpoint)
	override(&conf.Charts.Directory, *chartDir)
	override(&conf.Inputs.FeedwaterTemp, *feedwaterTemp)
	override(&conf.Inputs.SteamPressure, *steamPressure)
	override(&conf.Inputs.FuelFlow, *fuelFlow)
	override(&conf.Inputs.Efficiency, *efficiency)

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	var optimizer controller.Optimizer
	if conf.Client.Endpoint == "" {
		optimizer = optimize.NewService(logger, nil)
	} else {
		timeout, _ := conf.ClientTimeout()
		optimizer = client.New(conf.Client.Endpoint, timeout, logger)
	}

	var renderer controller.Renderer
	var files *render.FileRenderer
	if conf.Charts.Directory != "" {
		files, err = render.NewFileRenderer(conf.Charts.Directory, logger)
		if err != nil {
			logger.Fatal("failed to prepare chart directory",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		renderer = files
	}

	page := controller.NewDefaultPage()
	page.SetValue(controller.FeedwaterTemp, conf.Inputs.FeedwaterTemp)
	page.SetValue(controller.SteamPressure, conf.Inputs.SteamPressure)
	page.SetValue(controller.FuelFlow, conf.Inputs.FuelFlow)
	page.SetValue(controller.Efficiency, conf.Inputs.Efficiency)

	ctrl := controller.New(page, renderer, optimizer, logger)
	ctrl.Init()

	resp, err := ctrl.Submit(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, page.Text(controller.NoResults))
		_ = logger.Sync()
		os.Exit(1)
	}

	for _, id := range []string{controller.EnergyChart, controller.SensitivityChart} {
		if text := page.Text(id); text != "" {
			logger.Warn(text,
				zap.String("op", "main"),
				zap.String("chart", id),
			)
		}
	}
	if files != nil {
		for _, path := range files.Files() {
			logger.Info("chart written",
				zap.String("op", "main"),
				zap.String("path", path),
			)
		}
	}

	if err := output.Write(os.Stdout, conf.Output.Format, resp); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func override(target *string, value string) {
	if value != "" {
		*target = value
	}
}
