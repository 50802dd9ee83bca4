package audio

// DefaultSpeechThreshold is the RMS amplitude below which a segment is
// treated as silence. Tuned for 16-bit PCM captured at 16 kHz.
const DefaultSpeechThreshold = 1000.0

// DetectSpeech estimates whether a WAV segment likely contains speech
// using an amplitude check. It is a cheap pre-filter, not a full VAD:
// segments that cannot be parsed are assumed to contain speech so that
// the recognizer stays the authority on unusable audio.
func DetectSpeech(wav []byte, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultSpeechThreshold
	}
	samples, err := Samples(wav)
	if err != nil {
		return true
	}
	return RMS(samples) > threshold
}
