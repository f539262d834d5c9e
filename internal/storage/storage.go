// Package storage persists job artifacts and state markers. Two
// implementations are provided: a local filesystem store for the CLI
// and an in-memory store for tests. Callers depend on the interface
// they declare, so both satisfy the pipeline's store contract by
// structure.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Marker names written by the processing pipeline.
const (
	MarkerComplete = "complete"
	MarkerError    = "error"
)

// ErrNotFound reports a missing marker or artifact.
var ErrNotFound = errors.New("storage: not found")

// Local stores artifacts and markers under root/<jobID>/.
type Local struct {
	root string
}

// NewLocal returns a filesystem store rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

func (s *Local) jobDir(jobID string) string {
	return filepath.Join(s.root, jobID)
}

// WriteMarker records a job state marker with an optional message.
// An existing marker of the same name is never overwritten, so the
// first terminal state a job reaches is the one that sticks.
func (s *Local) WriteMarker(jobID, name, message string) error {
	if s.HasMarker(jobID, name) {
		return nil
	}
	dir := s.jobDir(jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create job dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(message), 0o644); err != nil {
		return fmt.Errorf("storage: write marker %s: %w", name, err)
	}
	return nil
}

// HasMarker reports whether the marker exists for the job.
func (s *Local) HasMarker(jobID, name string) bool {
	_, err := os.Stat(filepath.Join(s.jobDir(jobID), name))
	return err == nil
}

// ReadMarker returns the marker message.
func (s *Local) ReadMarker(jobID, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.jobDir(jobID), name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: marker %s/%s", ErrNotFound, jobID, name)
		}
		return "", fmt.Errorf("storage: read marker %s: %w", name, err)
	}
	return string(data), nil
}

// SaveArtifact writes a named artifact for the job.
func (s *Local) SaveArtifact(jobID, name string, data []byte) error {
	dir := s.jobDir(jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create job dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("storage: save artifact %s: %w", name, err)
	}
	return nil
}

// ArtifactPath returns the filesystem location of a job artifact.
func (s *Local) ArtifactPath(jobID, name string) string {
	return filepath.Join(s.jobDir(jobID), name)
}

// Cleanup removes everything stored for the job.
func (s *Local) Cleanup(jobID string) error {
	if err := os.RemoveAll(s.jobDir(jobID)); err != nil {
		return fmt.Errorf("storage: cleanup %s: %w", jobID, err)
	}
	return nil
}

// ScheduleCleanup removes the job's data after the delay. The returned
// timer can be stopped to cancel. The pipeline never calls this; it is
// for callers that retain downloads for a grace period.
func (s *Local) ScheduleCleanup(jobID string, delay time.Duration) *time.Timer {
	return time.AfterFunc(delay, func() {
		_ = s.Cleanup(jobID)
	})
}

// Memory is an in-process store for tests.
type Memory struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func key(jobID, name string) string {
	return jobID + "/" + name
}

// WriteMarker records a marker unless it already exists.
func (s *Memory) WriteMarker(jobID, name, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(jobID, name)
	if _, ok := s.entries[k]; ok {
		return nil
	}
	s.entries[k] = []byte(message)
	return nil
}

// HasMarker reports whether the marker exists.
func (s *Memory) HasMarker(jobID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key(jobID, name)]
	return ok
}

// ReadMarker returns the marker message.
func (s *Memory) ReadMarker(jobID, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key(jobID, name)]
	if !ok {
		return "", fmt.Errorf("%w: marker %s/%s", ErrNotFound, jobID, name)
	}
	return string(data), nil
}

// SaveArtifact stores a named artifact.
func (s *Memory) SaveArtifact(jobID, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.entries[key(jobID, name)] = cp
	return nil
}

// Artifact returns a stored artifact.
func (s *Memory) Artifact(jobID, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key(jobID, name)]
	if !ok {
		return nil, fmt.Errorf("%w: artifact %s/%s", ErrNotFound, jobID, name)
	}
	return data, nil
}

// Cleanup drops everything stored for the job.
func (s *Memory) Cleanup(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := jobID + "/"
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
		}
	}
	return nil
}
