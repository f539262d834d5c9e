// Package mixmaster turns a vocal stem and an instrumental beat into a
// mixed and mastered track, entirely in pure Go.
//
// Processing is a fixed chain of pure functions over float64 sample
// buffers:
//
//	analysis -> genre presets -> vocal chain -> beat chain -> mix -> master
//
// Each stage takes a [Buffer] plus a settings struct and returns a new
// Buffer; the same inputs and settings always produce the same output,
// including the synthetic reverb, whose noise source is seeded.
//
// # Quick Start
//
// The [Pipeline] type orchestrates a complete job from WAV files on
// disk to a mastered WAV plus analysis artifacts:
//
//	p := mixmaster.NewPipeline(storage.NewLocal("data"))
//	result, err := p.Run(ctx, mixmaster.Job{
//		ID:        "demo",
//		VocalPath: "vocal.wav",
//		BeatPath:  "beat.wav",
//		OutputDir: "out",
//		Params:    mixmaster.JobParams{Genre: "auto"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Individual stages are exported for callers that want to run part of
// the chain: [ProcessVocals], [ProcessBeat], [MixTracks], [MasterTrack].
//
// # Genre Presets
//
// Settings for every stage start from genre presets (trap, hip_hop,
// pop, r_and_b, with a neutral default for anything else). Passing the
// genre "auto" runs rule-based detection over the beat's tempo and
// brightness. User knobs (reverb amount, compression amount) are
// applied after the genre adjustments and always win.
//
// # Job State
//
// A job reaches exactly one terminal state, recorded as a marker
// through the [ArtifactStore] interface: "complete" on success or
// "error" with a message on the first stage failure. Implementations
// for the local filesystem and for tests live in internal/storage.
package mixmaster
