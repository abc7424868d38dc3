package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/KanishkSogani/VocaLearn/pkg/llm"
	"github.com/KanishkSogani/VocaLearn/pkg/models"
)

// Summarizer builds the terminal quiz report. The numeric part is computed
// locally and always present; the narrative part comes from the generation
// provider and is dropped when that call fails.
type Summarizer struct {
	provider llm.Provider
}

// NewSummarizer creates a Summarizer backed by the given provider.
func NewSummarizer(provider llm.Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// Build produces the summary frame for a session. When endedEarly is true
// the totals reflect only the questions actually answered, not the original
// target, and the frame type is quiz_ended_early.
func (s *Summarizer) Build(ctx context.Context, session *models.Session) *models.SummaryMessage {
	state := session.Quiz

	answered := state.CurrentQuestion
	endedEarly := answered < state.TotalQuestions

	total := state.TotalQuestions
	questions := state.Questions
	if endedEarly {
		total = answered
		if answered <= len(state.Questions) {
			questions = state.Questions[:answered]
		}
	}

	msg := &models.SummaryMessage{
		Type:           models.TypeQuizSummary,
		Score:          state.Score,
		TotalQuestions: total,
		Percentage:     percentage(state.Score, total),
		Questions:      questions,
	}
	if endedEarly {
		msg.Type = models.TypeQuizEndedEarly
	}

	detailed, err := s.narrative(ctx, session, questions, msg.Score, total)
	if err != nil {
		// Numeric results stand on their own; never block the summary on
		// a failed narrative call.
		log.Printf("⚠️ Narrative feedback generation failed for session %s: %v", session.ID, err)
	} else {
		msg.DetailedFeedback = detailed
	}

	return msg
}

func percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}

// narrative asks the provider for a category-scored assessment of the quiz.
func (s *Summarizer) narrative(ctx context.Context, session *models.Session, questions []models.QuizQuestion, score, total int) (*models.DetailedFeedback, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		Prompt:           buildSummaryPrompt(session, questions, score, total),
		LearningLanguage: session.LearningLanguage,
		NativeLanguage:   session.NativeLanguage,
		Mode:             "summary",
		MaxTokens:        1024,
		Temperature:      0.5,
	})
	if err != nil {
		return nil, err
	}

	var detailed models.DetailedFeedback
	if span, ok := extractJSON(resp.Text); ok {
		if err := json.Unmarshal([]byte(span), &detailed); err == nil {
			return &detailed, nil
		}
	}
	if err := json.Unmarshal([]byte(resp.Text), &detailed); err != nil {
		return nil, fmt.Errorf("parsing narrative feedback: %w", err)
	}
	return &detailed, nil
}

func buildSummaryPrompt(session *models.Session, questions []models.QuizQuestion, score, total int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A student learning %s (native language %s) just finished a %s quiz.\n",
		session.LearningLanguage, session.NativeLanguage, session.Quiz.Topic)
	fmt.Fprintf(&b, "Final score: %d out of %d.\n\nQuestions and answers:\n", score, total)

	for i, q := range questions {
		result := "not answered"
		if q.IsCorrect != nil {
			if *q.IsCorrect {
				result = "correct"
			} else {
				result = fmt.Sprintf("incorrect (answered %q, correct was %q)", q.UserAnswer, q.CorrectAnswer)
			}
		}
		fmt.Fprintf(&b, "%d. [%s] %s -> %s\n", i+1, q.Type, q.Question, result)
	}

	b.WriteString(`
Write an assessment of the student's performance, in the student's native language.

FORMAT (JSON only, no markdown):
{
  "grammarScore": 0-100,
  "vocabularyScore": 0-100,
  "comprehensionScore": 0-100,
  "overallScore": 0-100,
  "feedback": "2-3 sentence overall assessment",
  "strengthsAndWeaknesses": {
    "strengths": ["..."],
    "weaknesses": ["..."],
    "recommendations": ["..."]
  }
}`)

	return b.String()
}
