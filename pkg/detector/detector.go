// Package detector identifies the language of extracted page text.
package detector

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// candidateLanguages keeps the lingua model load bounded. The set covers the
// languages the tool's sitemaps realistically point at; everything else
// reports as undetected.
var candidateLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Japanese,
	lingua.Chinese,
	lingua.Korean,
	lingua.Russian,
}

// minSampleWords is the minimum text size worth running detection on.
// Shorter samples produce noise, not signal.
const minSampleWords = 5

// Detector wraps a lingua language detector. Building one loads the language
// models, so construct it once and share it across workers; detection itself
// is safe for concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a Detector with the candidate language set.
func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidateLanguages...).
			Build(),
	}
}

// Detect returns the ISO-639-1 code and confidence for the given text.
// An empty code means no reliable detection was possible.
func (d *Detector) Detect(text string) (string, float64) {
	if len(strings.Fields(text)) < minSampleWords {
		return "", 0
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", 0
	}

	confidence := d.detector.ComputeLanguageConfidence(text, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence
}
