// Command simulate is demonstration scaffolding that reads a simulation
// request as JSON (stdin or -input), runs the engine once, and writes the
// result as JSON (stdout or -output). It is not a served API.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/areumfire/montecarlo-engine/internal/facade"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// request mirrors the JSON shape accepted on stdin: assets, an optional
// config overriding facade.DefaultSimulationConfig(), and an optional
// explicit correlation matrix.
type request struct {
	Assets            []facade.AssetParams    `json:"assets"`
	Config            *facade.SimulationConfig `json:"config,omitempty"`
	CorrelationMatrix [][]float64              `json:"correlationMatrix,omitempty"`
	GoalTarget        *float64                 `json:"goalTarget,omitempty"`
}

type response struct {
	Result *facade.Result      `json:"result"`
	Goal   *facade.GoalReport `json:"goal,omitempty"`
}

func main() {
	input := flag.String("input", "", "path to the JSON request file (default: stdin)")
	output := flag.String("output", "", "path to write the JSON response (default: stdout)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := setupLogger(*logLevel)
	defer logger.Sync()

	in := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			logger.Fatal("failed to open input", zap.Error(err))
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		logger.Fatal("failed to read request", zap.Error(err))
	}

	defaultCfg := facade.DefaultSimulationConfig()
	req := request{Config: &defaultCfg}
	if err := json.Unmarshal(raw, &req); err != nil {
		logger.Fatal("failed to parse request JSON", zap.Error(err))
	}

	// req.Config was pre-populated with the defaults above, so a JSON
	// "config" object merges field-by-field onto them instead of replacing
	// the whole struct with JSON's zero values for anything it omits.
	cfg := *req.Config

	engine := facade.NewEngine(logger)
	result, err := engine.Simulate(req.Assets, cfg, req.CorrelationMatrix)
	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}

	resp := response{Result: result}
	if req.GoalTarget != nil {
		goal := facade.GoalProbability(result, *req.GoalTarget)
		resp.Goal = &goal
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Fatal("failed to open output", zap.Error(err))
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		logger.Fatal("failed to write response", zap.Error(err))
	}
}

func setupLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
