package recognition

import "context"

// Recognizer converts one audio segment into text. Implementations may be
// local (subprocess model) or remote (API); both are selected at
// construction, never at call time.
type Recognizer interface {
	// Transcribe converts a 16-bit PCM WAV segment into text using the
	// given source-language hint. An empty string with a nil error means
	// no speech was recognized.
	Transcribe(ctx context.Context, audio []byte, languageHint string) (string, error)

	// Name returns the provider identifier.
	Name() string
}
