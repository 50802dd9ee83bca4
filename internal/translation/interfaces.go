package translation

import "context"

// Translator converts text between languages. Implementations may be
// local or remote; both are selected at construction.
type Translator interface {
	// Translate converts text from sourceLang to targetLang.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)

	// DetectLanguage returns the ISO 639-1 language code of the text.
	DetectLanguage(ctx context.Context, text string) (string, error)

	// Name returns the provider identifier.
	Name() string
}

// TranslateBatch translates several texts sequentially with one
// translator. A nil entry in the result marks a failed translation.
func TranslateBatch(ctx context.Context, t Translator, texts []string, sourceLang, targetLang string) []*string {
	results := make([]*string, len(texts))
	for i, text := range texts {
		translated, err := t.Translate(ctx, text, sourceLang, targetLang)
		if err != nil {
			continue
		}
		results[i] = &translated
	}
	return results
}
