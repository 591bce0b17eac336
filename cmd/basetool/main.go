package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/basetool/internal/application"
	"github.com/eugenenazirov/basetool/internal/cli"
	"github.com/eugenenazirov/basetool/internal/config"
	"github.com/eugenenazirov/basetool/internal/logging"
)

const appName = "basetool"

var (
	exit = os.Exit
	// consoleSink overrides the console destination; nil means os.Stderr.
	consoleSink zapcore.WriteSyncer
)

func main() {
	err := run(config.DefaultPath, os.Args[1:])
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		exit(exitErr.Code)
		return
	}
	panic(fmt.Sprintf("basetool failed: %v", err))
}

func run(configPath string, argv []string) error {
	params, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	args, err := cli.NewParser(appName, "arg-xxx Description", os.Stdout).Parse(argv)
	if err != nil {
		return err
	}

	params = config.Apply(params, &config.Overrides{
		LogOutput: args.LogOutput,
		LogLevel:  args.LogLevel,
	})

	logCfg, err := logging.ConfigFrom(logging.Settings{
		Level: params.LoggerLevel,
		File:  params.LoggerFile,
		Count: params.LoggerCount,
		Size:  params.LoggerSize,
	})
	if err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	logCfg.Console = consoleSink
	logCfg.Name = appName

	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
		_ = logger.Close()
	}()
	defer zap.ReplaceGlobals(logger.Logger)()

	app, err := application.New(params, args.Names, logger.Logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return err
	}

	return app.Run()
}
