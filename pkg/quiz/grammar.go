package quiz

import "strings"

// Corrector is a per-language post-processing stage for grammar questions.
// Implementations patch known classes of oracle mistakes; they are not a
// grammar checker and make no claim of exhaustive correctness.
type Corrector interface {
	// Correct inspects a parsed question and returns a replacement correct
	// answer drawn from options, plus whether a substitution was made.
	Correct(question string, options []string, correctAnswer string) (string, bool)
}

// englishGrammarCorrector applies two lexical-pattern rules that catch the
// tense confusions the oracle most often makes for English targets.
type englishGrammarCorrector struct{}

var habitualCues = []string{"every day", "always", "usually", "often"}
var continuousCues = []string{"now", "right now", "at the moment", "currently"}

// Continuous-tense markers: a form of "be" followed by a gerund phrase, or
// its contraction.
var continuousMarkers = []string{"am ", "is ", "are ", "'m ", "'re ", "'s "}

// Markers excluded when searching for a simple-present candidate.
var nonSimpleMarkers = []string{"am ", "is ", "are ", "'m ", "'re ", "'s ", "will", "have ", "had ", "been"}

func (englishGrammarCorrector) Correct(question string, options []string, correctAnswer string) (string, bool) {
	questionText := strings.ToLower(question)

	// Rule 1: habitual cues demand simple present, not present continuous.
	if containsAny(questionText, habitualCues) && containsAny(correctAnswer, continuousMarkers) {
		for _, opt := range options {
			lower := strings.ToLower(opt)
			if len(lower) > 1 && !containsAny(lower, nonSimpleMarkers) {
				return opt, true
			}
		}
	}

	// Rule 2: present-moment cues demand present continuous.
	if containsAny(questionText, continuousCues) && !isPresentContinuous(correctAnswer) {
		for _, opt := range options {
			if isPresentContinuous(opt) {
				return opt, true
			}
		}
	}

	return correctAnswer, false
}

func isPresentContinuous(s string) bool {
	return strings.Contains(s, "am ") || strings.Contains(s, "is ") || strings.Contains(s, "are ")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
