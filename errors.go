package mixmaster

import "errors"

// Sentinel errors returned by the processing chains and pipeline.
// Wrap-aware callers can test with errors.Is.
var (
	// ErrInvalidInput indicates an unusable input buffer or job:
	// missing file, undecodable audio, empty or mismatched channels.
	ErrInvalidInput = errors.New("mixmaster: invalid input")

	// ErrStageFailure indicates a processing stage could not complete.
	ErrStageFailure = errors.New("mixmaster: stage failed")

	// ErrExternalService indicates an external collaborator (such as a
	// reference mastering service) failed. The pipeline treats this as
	// recoverable where a fallback exists.
	ErrExternalService = errors.New("mixmaster: external service failed")
)
