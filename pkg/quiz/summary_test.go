package quiz

import (
	"context"
	"testing"

	"github.com/KanishkSogani/VocaLearn/pkg/llm"
	"github.com/KanishkSogani/VocaLearn/pkg/models"
)

func completedSession(score, total int) *models.Session {
	correct := true
	questions := make([]models.QuizQuestion, total)
	for i := range questions {
		questions[i] = models.QuizQuestion{
			Question:      "Q",
			Type:          models.SynonymAntonym,
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
			UserAnswer:    "a",
			IsCorrect:     &correct,
		}
	}
	return &models.Session{
		ID:               "test-session",
		LearningLanguage: "es-ES",
		NativeLanguage:   "en-US",
		Quiz: &models.QuizState{
			CurrentQuestion: total,
			TotalQuestions:  total,
			Score:           score,
			Topic:           "general",
			Questions:       questions,
		},
	}
}

const narrativeJSON = `{
	"grammarScore": 80,
	"vocabularyScore": 70,
	"comprehensionScore": 90,
	"overallScore": 80,
	"feedback": "Solid work overall.",
	"strengthsAndWeaknesses": {
		"strengths": ["vocabulary recall"],
		"weaknesses": ["verb tenses"],
		"recommendations": ["practice the subjunctive"]
	}
}`

func TestBuild_CompletedQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: narrativeJSON})
	s := NewSummarizer(mock)

	msg := s.Build(context.Background(), completedSession(3, 4))

	if msg.Type != models.TypeQuizSummary {
		t.Errorf("expected quiz_summary, got %q", msg.Type)
	}
	if msg.Score != 3 || msg.TotalQuestions != 4 {
		t.Errorf("unexpected totals: %d/%d", msg.Score, msg.TotalQuestions)
	}
	if msg.Percentage != 75 {
		t.Errorf("expected 75%%, got %d", msg.Percentage)
	}
	if len(msg.Questions) != 4 {
		t.Errorf("expected 4 questions in report, got %d", len(msg.Questions))
	}
	if msg.DetailedFeedback == nil {
		t.Fatal("expected narrative feedback")
	}
	if msg.DetailedFeedback.OverallScore != 80 {
		t.Errorf("unexpected overall score %d", msg.DetailedFeedback.OverallScore)
	}
	if len(msg.DetailedFeedback.StrengthsAndWeaknesses.Recommendations) != 1 {
		t.Error("expected one recommendation")
	}
}

func TestBuild_NarrativeFailureKeepsNumericResult(t *testing.T) {
	mock := llm.NewMockProvider() // provider unavailable
	s := NewSummarizer(mock)

	msg := s.Build(context.Background(), completedSession(1, 1))

	if msg.DetailedFeedback != nil {
		t.Error("expected narrative to be omitted on oracle failure")
	}
	if msg.Score != 1 || msg.TotalQuestions != 1 || msg.Percentage != 100 {
		t.Errorf("numeric results must survive a narrative failure: %d/%d (%d%%)", msg.Score, msg.TotalQuestions, msg.Percentage)
	}
}

func TestBuild_UnparseableNarrativeKeepsNumericResult(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "I had trouble with that."})
	s := NewSummarizer(mock)

	msg := s.Build(context.Background(), completedSession(2, 4))

	if msg.DetailedFeedback != nil {
		t.Error("expected narrative to be omitted on parse failure")
	}
	if msg.Percentage != 50 {
		t.Errorf("expected 50%%, got %d", msg.Percentage)
	}
}

func TestBuild_EndedEarlyReflectsAnsweredCount(t *testing.T) {
	session := completedSession(2, 5)
	session.Quiz.CurrentQuestion = 2 // answered two of five

	mock := llm.NewMockProvider(llm.MockResponse{Text: narrativeJSON})
	s := NewSummarizer(mock)

	msg := s.Build(context.Background(), session)

	if msg.Type != models.TypeQuizEndedEarly {
		t.Errorf("expected quiz_ended_early, got %q", msg.Type)
	}
	if msg.TotalQuestions != 2 {
		t.Errorf("totals must reflect the answered count, got %d", msg.TotalQuestions)
	}
	if msg.Percentage != 100 {
		t.Errorf("2 of 2 answered correctly is 100%%, got %d", msg.Percentage)
	}
	if len(msg.Questions) != 2 {
		t.Errorf("report must only include answered questions, got %d", len(msg.Questions))
	}
}

func TestBuild_ZeroAnsweredAvoidsDivisionByZero(t *testing.T) {
	session := completedSession(0, 5)
	session.Quiz.CurrentQuestion = 0
	session.Quiz.Questions = nil

	mock := llm.NewMockProvider()
	s := NewSummarizer(mock)

	msg := s.Build(context.Background(), session)

	if msg.TotalQuestions != 0 || msg.Percentage != 0 {
		t.Errorf("expected empty summary, got %d questions at %d%%", msg.TotalQuestions, msg.Percentage)
	}
}

func TestPercentageRounding(t *testing.T) {
	cases := []struct {
		score, total, want int
	}{
		{1, 1, 100},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := percentage(tc.score, tc.total); got != tc.want {
			t.Errorf("percentage(%d, %d) = %d, want %d", tc.score, tc.total, got, tc.want)
		}
	}
}
