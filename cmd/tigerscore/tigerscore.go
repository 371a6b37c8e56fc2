// Command tigerscore measures how far machine transcripts are from their
// references and produces those transcripts with hosted speech services.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ughe/tigerscore/config"
)

const version = "0.2.0"

// Globals are shared by every command
type Globals struct {
	Config  string `help:"Path to tigerscore.yaml" type:"path" env:"TIGERSCORE_CONFIG"`
	Verbose bool   `short:"v" help:"Log at debug level"`

	cfg    config.Config   `kong:"-"`
	logger *slog.Logger    `kong:"-"`
	ctx    context.Context `kong:"-"`
	out    io.Writer       `kong:"-"`
	errw   io.Writer       `kong:"-"`
}

type CLI struct {
	Globals

	Score      ScoreCmd      `cmd:"" help:"Calculate WER and CER of a hypothesis against its reference"`
	Editdist   EditdistCmd   `cmd:"" help:"Calculate levenshtein distance of two text files"`
	Batch      BatchCmd      `cmd:"" help:"Score every hypothesis in a directory and write a report"`
	Transcribe TranscribeCmd `cmd:"" help:"Execute speech-to-text on selected providers"`
	Extract    ExtractCmd    `cmd:"" help:"Extract metadata from a saved transcript json"`
	Explore    ExploreCmd    `cmd:"" help:"Create the results explorer site"`
	Serve      ServeCmd      `cmd:"" help:"Serve the scoring API, metrics and explorer over HTTP"`
	Version    VersionCmd    `cmd:"" help:"Print version information"`
}

// setup loads the configuration and builds the logger before any command runs
func (g *Globals) setup(ctx context.Context, stdout, stderr io.Writer) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	if g.Verbose {
		cfg.LogLevel = "debug"
	}
	g.cfg = cfg
	g.logger = newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	g.ctx = ctx
	g.out = stdout
	g.errw = stderr
	return nil
}

func newLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.out, "tigerscore %s\n", version)
	return nil
}

func main() {
	var cli CLI
	k := kong.Parse(&cli,
		kong.Name("tigerscore"),
		kong.Description("Transcription error rates (WER, CER) and speech-to-text runners"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	k.FatalIfErrorf(cli.Globals.setup(ctx, os.Stdout, os.Stderr))
	slog.SetDefault(cli.Globals.logger)
	k.FatalIfErrorf(k.Run(&cli.Globals))
}
