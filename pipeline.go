package mixmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MasterBuilder91/MixMasterAi/internal/wavio"
)

// Marker names and artifact files written per job.
const (
	markerComplete = "complete"
	markerError    = "error"

	analysisArtifact = "analysis.json"
	outputFileName   = "mastered.wav"
)

// ArtifactStore records job state markers and artifacts. The local
// filesystem and in-memory implementations live in internal/storage.
// WriteMarker must not overwrite an existing marker of the same name,
// so a job's first terminal state is final.
type ArtifactStore interface {
	WriteMarker(jobID, name, message string) error
	HasMarker(jobID, name string) bool
	SaveArtifact(jobID, name string, data []byte) error
}

// JobParams are the user-facing knobs for a job.
type JobParams struct {
	// Genre selects the preset tables; "auto" runs detection on the
	// beat. Unknown genres fall back to neutral defaults.
	Genre string `yaml:"genre"`

	// ReverbAmount is the vocal reverb wet level, 0 to 1.
	ReverbAmount float64 `yaml:"reverb_amount"`

	// CompressionAmount maps to the vocal compression ratio, 0 to 1.
	CompressionAmount float64 `yaml:"compression_amount"`
}

// Job describes one processing request.
type Job struct {
	ID            string    `yaml:"id"`
	VocalPath     string    `yaml:"vocal"`
	BeatPath      string    `yaml:"beat"`
	ReferencePath string    `yaml:"reference,omitempty"`
	OutputDir     string    `yaml:"output_dir"`
	Params        JobParams `yaml:"params"`
}

// Result reports what a completed job produced.
type Result struct {
	OutputPath    string
	Genre         string
	VocalFeatures *Features
	BeatFeatures  *Features
	UsedReference bool
}

// Pipeline runs jobs end to end: load, analyze, process, mix, master,
// write. A Pipeline is safe for concurrent use; each Run call is
// independent.
type Pipeline struct {
	store   ArtifactStore
	matcher ReferenceMatcher
	log     *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the structured logger. The default discards nothing
// and writes to slog's default handler.
func WithLogger(log *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.log = log }
}

// WithReferenceMatcher installs an external reference mastering
// collaborator. Matching failures fall back to the standard chain.
func WithReferenceMatcher(m ReferenceMatcher) PipelineOption {
	return func(p *Pipeline) { p.matcher = m }
}

// NewPipeline returns a pipeline writing state through store.
func NewPipeline(store ArtifactStore, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes a job. Exactly one terminal marker is written: on
// success "complete", on the first stage failure "error" with the
// failure message. A crash before either leaves no marker.
func (p *Pipeline) Run(ctx context.Context, job Job) (*Result, error) {
	log := p.log.With("job_id", job.ID)
	log.Info("job started",
		"vocal", job.VocalPath, "beat", job.BeatPath, "genre", job.Params.Genre)

	result, err := p.process(ctx, job, log)
	if err != nil {
		log.Error("job failed", "error", err)
		if markErr := p.store.WriteMarker(job.ID, markerError,
			fmt.Sprintf("Processing failed: %s", err)); markErr != nil {
			log.Error("failed to record error marker", "error", markErr)
		}
		return nil, err
	}

	if err := p.store.WriteMarker(job.ID, markerComplete, result.OutputPath); err != nil {
		log.Error("failed to record completion marker", "error", err)
		return nil, fmt.Errorf("record completion: %w", err)
	}
	log.Info("job complete", "output", result.OutputPath, "genre", result.Genre)
	return result, nil
}

func (p *Pipeline) process(ctx context.Context, job Job, log *slog.Logger) (*Result, error) {
	if err := validateJob(job); err != nil {
		return nil, err
	}
	params := clampParams(job.Params)

	vocal, err := loadTrack(job.VocalPath)
	if err != nil {
		return nil, fmt.Errorf("load vocal: %w", err)
	}
	beat, err := loadTrack(job.BeatPath)
	if err != nil {
		return nil, fmt.Errorf("load beat: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("analyzing tracks")
	vocalFeat, err := Analyze(vocal)
	if err != nil {
		return nil, fmt.Errorf("%w: analyze vocal: %w", ErrStageFailure, err)
	}
	beatFeat, err := Analyze(beat)
	if err != nil {
		return nil, fmt.Errorf("%w: analyze beat: %w", ErrStageFailure, err)
	}
	p.saveAnalysis(job.ID, vocalFeat, beatFeat, log)

	genre := params.Genre
	if genre == "" || genre == GenreAuto {
		genre = DetectGenre(beatFeat)
		log.Info("genre detected", "genre", genre, "tempo_bpm", beatFeat.TempoBPM)
	}

	log.Info("processing vocal")
	processedVocal, err := ProcessVocals(vocal, VocalPreset(genre, params.ReverbAmount, params.CompressionAmount))
	if err != nil {
		return nil, fmt.Errorf("%w: vocal: %w", ErrStageFailure, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("processing beat")
	processedBeat, err := ProcessBeat(beat, BeatPreset(genre))
	if err != nil {
		return nil, fmt.Errorf("%w: beat: %w", ErrStageFailure, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("mixing")
	mix, err := MixTracks(processedVocal, processedBeat, MixPreset(genre))
	if err != nil {
		return nil, fmt.Errorf("%w: mix: %w", ErrStageFailure, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("mastering")
	masterSettings := MasterPreset(genre)
	var reference *Buffer
	if job.ReferencePath != "" {
		reference, err = loadTrack(job.ReferencePath)
		if err != nil {
			return nil, fmt.Errorf("load reference: %w", err)
		}
		masterSettings.UseReferenceMatching = true
	}
	mastered, usedReference, err := MasterWithReference(ctx, mix, reference, masterSettings, p.matcher)
	if err != nil {
		return nil, fmt.Errorf("%w: master: %w", ErrStageFailure, err)
	}
	if masterSettings.UseReferenceMatching && !usedReference {
		log.Warn("reference matching unavailable, used standard chain")
	}

	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	outputPath := filepath.Join(job.OutputDir, outputFileName)
	if err := wavio.Write(outputPath, mastered.Channels, mastered.Rate); err != nil {
		return nil, fmt.Errorf("%w: write output: %w", ErrStageFailure, err)
	}

	return &Result{
		OutputPath:    outputPath,
		Genre:         genre,
		VocalFeatures: vocalFeat,
		BeatFeatures:  beatFeat,
		UsedReference: usedReference,
	}, nil
}

// saveAnalysis persists the per-track feature report. Analysis is
// informational; a storage failure is logged, not fatal.
func (p *Pipeline) saveAnalysis(jobID string, vocal, beat *Features, log *slog.Logger) {
	report := struct {
		Vocal *Features `json:"vocal"`
		Beat  *Features `json:"beat"`
	}{Vocal: vocal, Beat: beat}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Warn("failed to encode analysis report", "error", err)
		return
	}
	if err := p.store.SaveArtifact(jobID, analysisArtifact, data); err != nil {
		log.Warn("failed to save analysis report", "error", err)
	}
}

func validateJob(job Job) error {
	if job.ID == "" {
		return fmt.Errorf("%w: missing job ID", ErrInvalidInput)
	}
	if job.VocalPath == "" || job.BeatPath == "" {
		return fmt.Errorf("%w: missing input paths", ErrInvalidInput)
	}
	if job.OutputDir == "" {
		return fmt.Errorf("%w: missing output directory", ErrInvalidInput)
	}
	return nil
}

// clampParams forces user knobs into their documented 0..1 range.
func clampParams(p JobParams) JobParams {
	p.ReverbAmount = clamp01(p.ReverbAmount)
	p.CompressionAmount = clamp01(p.CompressionAmount)
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// loadTrack reads a WAV file into a validated buffer.
func loadTrack(path string) (*Buffer, error) {
	channels, rate, err := wavio.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	b := &Buffer{Channels: channels, Rate: rate}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
