package translation

// translatedBaseScore is the score a non-empty translation starts from
// before the length ratio is applied.
const translatedBaseScore = 0.7

// Confidence estimates translation quality in [0, 1] from the length
// ratio between the original and translated text. An absent or empty
// translation scores 0; any non-empty translation scores above 0. The
// heuristic is deliberately simple and may be replaced, as long as the
// range and the monotonic-with-presence behavior hold.
func Confidence(original, translated string) float64 {
	if len(original) == 0 || len(translated) == 0 {
		return 0.0
	}

	shorter, longer := len(original), len(translated)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	lengthRatio := float64(shorter) / float64(longer)

	confidence := translatedBaseScore * lengthRatio
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
