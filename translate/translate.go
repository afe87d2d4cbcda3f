// Package translate provides moviereviews.Translator implementations backed
// by Amazon Translate or a translation-manager Lambda function.
package translate

import (
	"context"
	"strings"

	"github.com/sicko7947/moviereviews"
)

// Passthrough wraps a translator and returns the text unchanged when no
// translation is needed. Empty translations are returned as they come; the
// caller decides what to show instead.
type Passthrough struct {
	next moviereviews.Translator
}

// WithPassthrough wraps next
func WithPassthrough(next moviereviews.Translator) *Passthrough {
	return &Passthrough{next: next}
}

func (f *Passthrough) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	if sameLanguage(sourceLanguage, targetLanguage) || strings.TrimSpace(text) == "" {
		return text, nil
	}

	return f.next.Translate(ctx, text, sourceLanguage, targetLanguage)
}

// sameLanguage compares primary subtags, so "en" and "en-GB" match
func sameLanguage(a, b string) bool {
	return strings.EqualFold(primarySubtag(a), primarySubtag(b))
}

func primarySubtag(tag string) string {
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		return tag[:i]
	}
	return tag
}

var _ moviereviews.Translator = (*Passthrough)(nil)
