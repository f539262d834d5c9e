// Command mixmaster mixes and masters a vocal stem against a beat.
//
// Usage:
//
//	mixmaster process vocal.wav beat.wav -o out --genre trap
//	mixmaster worker ./jobs --concurrency 4
//	mixmaster analyze track.wav
//
// The worker command scans a directory of YAML job specs and runs them
// concurrently; see the Job type for the job file format.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	mixmaster "github.com/MasterBuilder91/MixMasterAi"
	"github.com/MasterBuilder91/MixMasterAi/internal/storage"
	"github.com/MasterBuilder91/MixMasterAi/internal/wavio"
)

var cli struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	Data    string `help:"Artifact store directory" default:"data"`

	Process processCmd `cmd:"" help:"Process a single vocal/beat pair"`
	Worker  workerCmd  `cmd:"" help:"Run jobs from a directory of YAML specs"`
	Analyze analyzeCmd `cmd:"" help:"Print audio features for a WAV file"`
}

func main() {
	ktx := kong.Parse(&cli,
		kong.Name("mixmaster"),
		kong.Description("Deterministic vocal/beat mixing and mastering"),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ktx.Run(ctx, log); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

type processCmd struct {
	Vocal       string  `arg:"" help:"Vocal stem WAV" type:"existingfile"`
	Beat        string  `arg:"" help:"Beat WAV" type:"existingfile"`
	Output      string  `short:"o" help:"Output directory" default:"out"`
	Genre       string  `help:"Genre preset (trap, hip_hop, pop, r_and_b) or auto" default:"auto"`
	Reverb      float64 `help:"Vocal reverb amount, 0 to 1" default:"0.2"`
	Compression float64 `help:"Vocal compression amount, 0 to 1" default:"0.5"`
	Reference   string  `help:"Reference track for mastering" type:"existingfile" optional:""`
	JobID       string  `help:"Job identifier; generated when empty"`
}

func (c *processCmd) Run(ctx context.Context, log *slog.Logger) error {
	jobID := c.JobID
	if jobID == "" {
		jobID = newJobID()
	}

	p := mixmaster.NewPipeline(storage.NewLocal(cli.Data), mixmaster.WithLogger(log))
	result, err := p.Run(ctx, mixmaster.Job{
		ID:            jobID,
		VocalPath:     c.Vocal,
		BeatPath:      c.Beat,
		ReferencePath: c.Reference,
		OutputDir:     c.Output,
		Params: mixmaster.JobParams{
			Genre:             c.Genre,
			ReverbAmount:      c.Reverb,
			CompressionAmount: c.Compression,
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Mastered %s + %s -> %s (genre: %s)\n",
		c.Vocal, c.Beat, result.OutputPath, result.Genre)
	return nil
}

type analyzeCmd struct {
	File string `arg:"" help:"WAV file to analyze" type:"existingfile"`
}

func (c *analyzeCmd) Run(ctx context.Context, log *slog.Logger) error {
	channels, rate, err := wavio.Read(c.File)
	if err != nil {
		return err
	}
	features, err := mixmaster.Analyze(&mixmaster.Buffer{Channels: channels, Rate: rate})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(features, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
