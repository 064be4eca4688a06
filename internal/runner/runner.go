// Package runner wires one battle invocation end to end: request JSON in,
// result JSON out, one video artifact on disk.
//
// The runner is the process boundary. Its caller is a separate process
// that cannot catch anything, so every failure — bad arguments, unreadable
// input, engine or render errors, even a programming-error panic — is
// converted to the documented {"error": ...} object on stdout plus a
// nonzero exit code. Nothing is retried; this is a single-shot batch job.
package runner

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/botarena/battlesim/internal/config"
	"github.com/botarena/battlesim/internal/engine"
	"github.com/botarena/battlesim/internal/export"
	"github.com/botarena/battlesim/internal/logging"
	"github.com/botarena/battlesim/internal/parts"
	"github.com/botarena/battlesim/internal/render"
	"github.com/botarena/battlesim/internal/request"
)

const usage = "usage: battle_runner <input.json> <output_path> [--format=gif|mp4]"

// args is the parsed command line.
type args struct {
	inputPath  string
	outputPath string
	format     string
}

func parseArgs(argv []string) (args, error) {
	a := args{format: "gif"}
	var positional []string
	for _, arg := range argv {
		switch {
		case strings.HasPrefix(arg, "--format="):
			a.format = strings.ToLower(strings.TrimPrefix(arg, "--format="))
		case strings.HasPrefix(arg, "--"):
			return a, fmt.Errorf("unknown flag %s; %s", arg, usage)
		default:
			positional = append(positional, arg)
		}
	}
	if len(positional) != 2 {
		return a, fmt.Errorf("%s", usage)
	}
	if a.format != "gif" && a.format != "mp4" {
		return a, fmt.Errorf("unsupported format %q; %s", a.format, usage)
	}
	a.inputPath = positional[0]
	a.outputPath = positional[1]
	return a, nil
}

// Run executes one battle invocation and returns the process exit code.
// stdout receives exactly one JSON object: the result payload on success
// or {"error": ...} on failure.
func Run(argv []string, stdout io.Writer) (code int) {
	defer func() {
		// Engine/render defects must still honor the process contract.
		if r := recover(); r != nil {
			export.WriteError(stdout, fmt.Sprintf("internal error: %v", r))
			code = 1
		}
	}()

	a, err := parseArgs(argv)
	if err != nil {
		export.WriteError(stdout, err.Error())
		return 1
	}

	configDirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		configDirs = append(configDirs, filepath.Dir(exe))
	}
	if err := config.Load(configDirs...); err != nil {
		export.WriteError(stdout, err.Error())
		return 1
	}

	logManager := logging.NewManager()
	logFile, err := logging.OpenLogFile(config.GetString("logsDir"), time.Now())
	if err != nil {
		// Diagnostics degrade to stderr only; the battle still runs.
		logManager.Setup(nil, config.GetString("logLevel"))
		logManager.Logger().Warn("Could not open log file", "error", err)
	} else {
		defer func() { _ = logFile.Close() }()
		logManager.Setup(logFile, config.GetString("logLevel"))
	}
	logger := logManager.Logger()

	req, err := request.ParseFile(a.inputPath)
	if err != nil {
		logger.Error("Request rejected", "error", err)
		export.WriteError(stdout, err.Error())
		return 1
	}

	res, err := simulate(req, logger)
	if err != nil {
		logger.Error("Battle failed", "error", err)
		export.WriteError(stdout, err.Error())
		return 1
	}

	outputPath, err := renderResult(req, res, a, logger)
	if err != nil {
		logger.Error("Render failed", "error", err)
		export.WriteError(stdout, err.Error())
		return 1
	}

	payload, err := export.Build(res, outputPath)
	if err != nil {
		export.WriteError(stdout, err.Error())
		return 1
	}
	if err := payload.Write(stdout); err != nil {
		return 1
	}
	return 0
}

// simulate builds the engine from the request and runs the battle.
func simulate(req *request.Request, logger *slog.Logger) (*engine.Result, error) {
	cfg := engine.Config{
		Width:       orFloat(req.Config.ArenaWidth, config.GetFloat64("arena.width")),
		Height:      orFloat(req.Config.ArenaHeight, config.GetFloat64("arena.height")),
		FPS:         orInt(req.Config.FPS, config.GetInt("arena.fps")),
		MaxDuration: orFloat(req.Config.MaxDuration, config.GetFloat64("arena.maxDuration")),
		Seed:        orInt64(req.Config.Seed, int64(config.GetInt("engine.seed"))),
	}

	eng := engine.New(cfg, logger)
	for _, p := range req.Bots(parts.DefaultRegistry()) {
		if err := eng.AddBot(p); err != nil {
			return nil, fmt.Errorf("registering bot: %w", err)
		}
	}
	return eng.Run()
}

// renderResult renders the requested format, falling back from MP4 to GIF
// when the encoder is unavailable or fails. The returned path reflects any
// extension rewrite from the fallback.
func renderResult(req *request.Request, res *engine.Result, a args, logger *slog.Logger) (string, error) {
	fps := orInt(req.Config.FPS, config.GetInt("arena.fps"))

	team1Color := req.Config.Team1Color
	if team1Color == "" {
		team1Color = config.GetString("render.team1Color")
	}
	team2Color := req.Config.Team2Color
	if team2Color == "" {
		team2Color = config.GetString("render.team2Color")
	}

	r := render.New(render.Options{
		Width:      orFloat(req.Config.ArenaWidth, config.GetFloat64("arena.width")),
		Height:     orFloat(req.Config.ArenaHeight, config.GetFloat64("arena.height")),
		Scale:      orFloat(req.Config.Scale, config.GetFloat64("render.scale")),
		FPS:        fps,
		Team1Color: team1Color,
		Team2Color: team2Color,
		Registry:   parts.DefaultRegistry(),
		AssetsDir:  config.GetString("render.assetsDir"),
		Campaign:   req.Config.Campaign,
		Mission:    req.Config.Mission,
		FFmpegPath: config.GetString("render.ffmpegPath"),
		Logger:     logger,
	})

	outputPath := a.outputPath
	if a.format == "mp4" {
		err := r.RenderMP4(res, outputPath)
		if err == nil {
			return outputPath, nil
		}
		// Recoverable: the caller gets a GIF instead of a failure.
		logger.Warn("MP4 encoding failed, falling back to GIF", "error", err)
		outputPath = swapExt(outputPath, ".gif")
	}

	skip := render.FrameSkip(fps, config.GetInt("render.gifTargetFPS"))
	if err := r.RenderGIF(res, outputPath, skip); err != nil {
		return "", err
	}
	return outputPath, nil
}

func swapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func orInt64(v *int64, def int64) int64 {
	if v == nil {
		return def
	}
	return *v
}
