package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/KanishkSogani/VocaLearn/pkg/llm"
	"github.com/KanishkSogani/VocaLearn/pkg/models"
)

// GenerateInput holds everything needed to generate one question. The caller
// selects the question type so selection policy stays outside the generator.
type GenerateInput struct {
	Type             models.QuestionType
	LearningLanguage string
	NativeLanguage   string
	Topic            string
	History          []string
}

// Generator turns a question-type selection into a validated multiple-choice
// question via the generation provider. Oracle failures propagate to the
// caller; malformed oracle output degrades to the fallback question instead.
type Generator struct {
	provider   llm.Provider
	correctors map[string]Corrector
}

// NewGenerator creates a Generator with the default corrector set.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{
		provider: provider,
		correctors: map[string]Corrector{
			"en-US": englishGrammarCorrector{},
		},
	}
}

// rawQuestion is the shape expected inside the provider's free-text response.
type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Generate produces a single question. The provider call is awaited fully;
// there is no partial delivery.
func (g *Generator) Generate(ctx context.Context, input GenerateInput) (*models.QuizQuestion, error) {
	prompt := buildPrompt(input.Type, input.LearningLanguage, input.NativeLanguage, input.Topic, input.History)

	resp, err := g.provider.Generate(ctx, llm.Request{
		Prompt:           prompt,
		LearningLanguage: input.LearningLanguage,
		NativeLanguage:   input.NativeLanguage,
		Mode:             "quiz",
		MaxTokens:        1024,
		Temperature:      0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	raw, ok := parseQuestionResponse(resp.Text)
	if !ok {
		log.Printf("⚠️ Could not parse question JSON, using fallback. Raw response: %s", resp.Text)
		raw = fallbackQuestion()
	} else if !wellFormed(raw) {
		log.Printf("⚠️ Generated question is defective (answer not among options), using fallback")
		raw = fallbackQuestion()
	} else if input.Type == models.GrammarPattern {
		if c, ok := g.correctors[input.LearningLanguage]; ok {
			if fixed, changed := c.Correct(raw.Question, raw.Options, raw.CorrectAnswer); changed {
				log.Printf("⚠️ Grammar fix: changing correct answer from %q to %q", raw.CorrectAnswer, fixed)
				raw.CorrectAnswer = fixed
			}
		}
	}

	return &models.QuizQuestion{
		Question:      raw.Question,
		Type:          input.Type,
		Options:       raw.Options,
		CorrectAnswer: raw.CorrectAnswer,
	}, nil
}

// parseQuestionResponse extracts the first balanced {...} span from the raw
// response and parses it; failing that it parses the whole response.
func parseQuestionResponse(text string) (rawQuestion, bool) {
	var raw rawQuestion

	if span, ok := extractJSON(text); ok {
		if err := json.Unmarshal([]byte(span), &raw); err == nil && raw.Question != "" {
			return raw, true
		}
	}
	if err := json.Unmarshal([]byte(text), &raw); err == nil && raw.Question != "" {
		return raw, true
	}
	return rawQuestion{}, false
}

// extractJSON returns the first balanced top-level {...} span in text.
// Braces inside JSON strings are accounted for.
func extractJSON(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// wellFormed checks the delivery invariant: exactly four options and a
// correct answer that trim-matches one of them.
func wellFormed(raw rawQuestion) bool {
	if len(raw.Options) != 4 || strings.TrimSpace(raw.CorrectAnswer) == "" {
		return false
	}
	answer := strings.TrimSpace(raw.CorrectAnswer)
	for _, opt := range raw.Options {
		if strings.TrimSpace(opt) == answer {
			return true
		}
	}
	return false
}

// fallbackQuestion is the fixed placeholder used when the oracle output is
// unusable. Degraded but keeps the quiz moving.
func fallbackQuestion() rawQuestion {
	return rawQuestion{
		Question:      "Sample question",
		Options:       []string{"Option 1", "Option 2", "Option 3", "Option 4"},
		CorrectAnswer: "Option 1",
	}
}
