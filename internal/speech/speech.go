package speech

import "context"

// VoiceOptions selects the synthesized voice.
type VoiceOptions struct {
	Language string
	Speaker  string
}

// Bridge is the contract to the external speech services. Both calls are
// slow network round trips and both fail; the dialogue engine treats a
// transcription failure as caller silence and a synthesis failure as a
// turn-level abort.
type Bridge interface {
	Transcribe(ctx context.Context, audioURL, language string) (string, error)
	Synthesize(ctx context.Context, text string, opts VoiceOptions) (string, error)
}
