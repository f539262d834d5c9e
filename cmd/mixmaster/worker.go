package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	mixmaster "github.com/MasterBuilder91/MixMasterAi"
	"github.com/MasterBuilder91/MixMasterAi/internal/storage"
)

type workerCmd struct {
	Jobs        string `arg:"" help:"Directory of YAML job specs" type:"existingdir"`
	Concurrency int    `help:"Jobs processed in parallel" default:"2"`
	Output      string `short:"o" help:"Default output directory for jobs that omit one" default:"out"`
}

// Run loads every *.yaml spec under the jobs directory and processes
// them concurrently. A failing job does not stop the others; the first
// failure is reported after all jobs finish.
func (c *workerCmd) Run(ctx context.Context, log *slog.Logger) error {
	jobs, err := c.loadJobs()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		log.Info("no job specs found", "dir", c.Jobs)
		return nil
	}
	log.Info("worker starting", "jobs", len(jobs), "concurrency", c.Concurrency)

	p := mixmaster.NewPipeline(storage.NewLocal(cli.Data), mixmaster.WithLogger(log))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)
	for _, job := range jobs {
		g.Go(func() error {
			_, err := p.Run(gctx, job)
			if err != nil {
				return fmt.Errorf("job %s: %w", job.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// loadJobs parses all YAML specs in the directory, filling in missing
// job IDs and output directories.
func (c *workerCmd) loadJobs() ([]mixmaster.Job, error) {
	entries, err := os.ReadDir(c.Jobs)
	if err != nil {
		return nil, fmt.Errorf("read jobs dir: %w", err)
	}

	var jobs []mixmaster.Job
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		job, err := loadJobSpec(filepath.Join(c.Jobs, entry.Name()))
		if err != nil {
			return nil, err
		}
		if job.ID == "" {
			job.ID = newJobID()
		}
		if job.OutputDir == "" {
			job.OutputDir = filepath.Join(c.Output, job.ID)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// loadJobSpec decodes one YAML job spec. Unknown fields are rejected
// so typos in specs fail loudly instead of silently using defaults.
func loadJobSpec(path string) (mixmaster.Job, error) {
	var job mixmaster.Job

	f, err := os.Open(path)
	if err != nil {
		return job, fmt.Errorf("open job spec %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		return job, fmt.Errorf("parse job spec %s: %w", path, err)
	}
	return job, nil
}

// newJobID generates a random job identifier.
func newJobID() string {
	return uuid.NewString()
}
