package mixmaster

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterBuilder91/MixMasterAi/internal/storage"
	"github.com/MasterBuilder91/MixMasterAi/internal/testutil"
	"github.com/MasterBuilder91/MixMasterAi/internal/wavio"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeStem writes a short sine stem and returns its path.
func writeStem(t *testing.T, dir, name string, freq float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	samples := testutil.Sine(13230, 44100, freq, 0.5)
	require.NoError(t, wavio.Write(path, [][]float64{samples}, 44100))
	return path
}

func testJob(t *testing.T, id string) Job {
	t.Helper()
	dir := t.TempDir()
	return Job{
		ID:        id,
		VocalPath: writeStem(t, dir, "vocal.wav", 440),
		BeatPath:  writeStem(t, dir, "beat.wav", 120),
		OutputDir: filepath.Join(dir, "out"),
		Params:    JobParams{Genre: GenrePop, ReverbAmount: 0.2, CompressionAmount: 0.5},
	}
}

func TestPipelineRunSuccess(t *testing.T) {
	store := storage.NewMemory()
	p := NewPipeline(store, WithLogger(quietLogger()))

	job := testJob(t, "job-success")
	result, err := p.Run(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, GenrePop, result.Genre)
	assert.FileExists(t, result.OutputPath)
	assert.Equal(t, filepath.Join(job.OutputDir, "mastered.wav"), result.OutputPath)
	assert.False(t, result.UsedReference)
	require.NotNil(t, result.VocalFeatures)
	require.NotNil(t, result.BeatFeatures)

	assert.True(t, store.HasMarker(job.ID, storage.MarkerComplete))
	assert.False(t, store.HasMarker(job.ID, storage.MarkerError))
}

func TestPipelineRunSavesAnalysisArtifact(t *testing.T) {
	store := storage.NewMemory()
	p := NewPipeline(store, WithLogger(quietLogger()))

	job := testJob(t, "job-analysis")
	_, err := p.Run(context.Background(), job)
	require.NoError(t, err)

	data, err := store.Artifact(job.ID, "analysis.json")
	require.NoError(t, err)

	var report struct {
		Vocal *Features `json:"vocal"`
		Beat  *Features `json:"beat"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	require.NotNil(t, report.Vocal)
	require.NotNil(t, report.Beat)
	assert.Greater(t, report.Vocal.RMS, 0.0)
}

func TestPipelineRunAutoDetectsGenre(t *testing.T) {
	store := storage.NewMemory()
	p := NewPipeline(store, WithLogger(quietLogger()))

	job := testJob(t, "job-auto")
	job.Params.Genre = GenreAuto

	result, err := p.Run(context.Background(), job)
	require.NoError(t, err)

	assert.Contains(t,
		[]string{GenreTrap, GenreHipHop, GenrePop, GenreRAndB, GenreOther},
		result.Genre)
}

func TestPipelineRunMissingInputWritesErrorMarker(t *testing.T) {
	store := storage.NewMemory()
	p := NewPipeline(store, WithLogger(quietLogger()))

	job := testJob(t, "job-missing")
	job.VocalPath = filepath.Join(t.TempDir(), "nope.wav")

	_, err := p.Run(context.Background(), job)
	require.Error(t, err)

	require.True(t, store.HasMarker(job.ID, storage.MarkerError))
	assert.False(t, store.HasMarker(job.ID, storage.MarkerComplete))

	msg, err := store.ReadMarker(job.ID, storage.MarkerError)
	require.NoError(t, err)
	assert.Contains(t, msg, "Processing failed:")
}

func TestPipelineRunRejectsIncompleteJob(t *testing.T) {
	store := storage.NewMemory()
	p := NewPipeline(store, WithLogger(quietLogger()))

	job := testJob(t, "job-invalid")
	job.OutputDir = ""

	_, err := p.Run(context.Background(), job)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, store.HasMarker(job.ID, storage.MarkerError))
}

func TestPipelineRunHonorsCancellation(t *testing.T) {
	store := storage.NewMemory()
	p := NewPipeline(store, WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, testJob(t, "job-cancelled"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineRunUsesReferenceMatcher(t *testing.T) {
	store := storage.NewMemory()
	matched := sineBuffer(330, 0.5, 0.3)
	p := NewPipeline(store,
		WithLogger(quietLogger()),
		WithReferenceMatcher(stubMatcher{out: matched}))

	job := testJob(t, "job-reference")
	job.ReferencePath = writeStem(t, t.TempDir(), "reference.wav", 330)

	result, err := p.Run(context.Background(), job)
	require.NoError(t, err)
	assert.True(t, result.UsedReference)
}

func TestPipelineErrorMarkerIsWrittenOnce(t *testing.T) {
	store := storage.NewMemory()
	p := NewPipeline(store, WithLogger(quietLogger()))

	job := testJob(t, "job-twice")
	job.VocalPath = filepath.Join(t.TempDir(), "nope.wav")

	_, err := p.Run(context.Background(), job)
	require.Error(t, err)
	first, err := store.ReadMarker(job.ID, storage.MarkerError)
	require.NoError(t, err)

	// A retry that fails differently must not clobber the first record.
	job.BeatPath = filepath.Join(t.TempDir(), "also-nope.wav")
	_, err = p.Run(context.Background(), job)
	require.Error(t, err)

	second, err := store.ReadMarker(job.ID, storage.MarkerError)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
