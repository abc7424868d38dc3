package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KanishkSogani/VocaLearn/pkg/llm"
	"github.com/KanishkSogani/VocaLearn/pkg/models"
	"github.com/KanishkSogani/VocaLearn/pkg/quiz"
)

// captureSender records every frame instead of writing to a connection.
type captureSender struct {
	frames []interface{}
}

func (c *captureSender) Send(v interface{}) error {
	c.frames = append(c.frames, v)
	return nil
}

func (c *captureSender) last() interface{} {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func questionJSON(n int) string {
	return fmt.Sprintf(`{
		"question": "Question %d",
		"options": ["right %d", "wrong a", "wrong b", "wrong c"],
		"correctAnswer": "right %d"
	}`, n, n, n)
}

func newTestService(mock *llm.MockProvider) *SessionService {
	generator := quiz.NewGenerator(mock)
	summarizer := quiz.NewSummarizer(mock)
	return NewSessionService(generator, summarizer, nil, 5*time.Second)
}

func TestCreateSession_Defaults(t *testing.T) {
	svc := newTestService(llm.NewMockProvider())

	cases := []struct {
		name      string
		questions int
		topic     string
		wantCount int
		wantTopic string
	}{
		{"zero questions falls back to default", 0, "travel", 5, "travel"},
		{"negative questions falls back to default", -3, "food", 5, "food"},
		{"over the cap is clamped", 50, "general", 20, "general"},
		{"unknown topic falls back to general", 5, "astrophysics", 5, "general"},
		{"empty topic falls back to general", 5, "", 5, "general"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := svc.CreateSession("es-ES", "en-US", tc.topic, tc.questions)
			if session.Quiz.TotalQuestions != tc.wantCount {
				t.Errorf("totalQuestions = %d, want %d", session.Quiz.TotalQuestions, tc.wantCount)
			}
			if session.Quiz.Topic != tc.wantTopic {
				t.Errorf("topic = %q, want %q", session.Quiz.Topic, tc.wantTopic)
			}
			if session.ID == "" {
				t.Error("session must get an ID")
			}
		})
	}
}

func TestOneQuestionQuizCorrectAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: questionJSON(1)})
	svc := newTestService(mock)
	sender := &captureSender{}
	ctx := context.Background()

	session := svc.CreateSession("es-ES", "en-US", "general", 1)
	if err := svc.StartQuiz(ctx, session, sender); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	q, ok := sender.last().(*models.QuestionMessage)
	if !ok {
		t.Fatalf("expected a question frame, got %T", sender.last())
	}
	if q.QuestionNumber != 1 || q.TotalQuestions != 1 {
		t.Errorf("question numbering = %d/%d, want 1/1", q.QuestionNumber, q.TotalQuestions)
	}

	svc.HandleAction(ctx, session, models.ClientAction{
		Action:         models.ActionSubmitAnswer,
		SelectedOption: "right 1",
	}, sender)

	fb, ok := sender.last().(*models.FeedbackMessage)
	if !ok {
		t.Fatalf("expected a feedback frame, got %T", sender.last())
	}
	if !fb.IsCorrect || fb.Score != 1 {
		t.Errorf("expected correct answer with score 1, got isCorrect=%v score=%d", fb.IsCorrect, fb.Score)
	}
	if fb.HasMoreQuestions {
		t.Error("last question must report hasMoreQuestions=false")
	}

	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionNextQuestion}, sender)

	summary, ok := sender.last().(*models.SummaryMessage)
	if !ok {
		t.Fatalf("expected a summary frame, got %T", sender.last())
	}
	if summary.Type != models.TypeQuizSummary {
		t.Errorf("summary type = %q, want quiz_summary", summary.Type)
	}
	if summary.Score != 1 || summary.TotalQuestions != 1 || summary.Percentage != 100 {
		t.Errorf("summary = %d/%d (%d%%), want 1/1 (100%%)", summary.Score, summary.TotalQuestions, summary.Percentage)
	}
}

func TestThreeQuestionQuizWithSkip(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: questionJSON(1)},
		llm.MockResponse{Text: questionJSON(2)},
		llm.MockResponse{Text: questionJSON(3)},
	)
	svc := newTestService(mock)
	sender := &captureSender{}
	ctx := context.Background()

	session := svc.CreateSession("es-ES", "en-US", "general", 3)
	if err := svc.StartQuiz(ctx, session, sender); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	// Q1 answered correctly.
	svc.HandleAction(ctx, session, models.ClientAction{
		Action:         models.ActionSubmitAnswer,
		SelectedOption: "right 1",
	}, sender)
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionNextQuestion}, sender)

	// Q2 skipped.
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionSkipQuestion}, sender)

	fb, ok := sender.last().(*models.FeedbackMessage)
	if !ok {
		t.Fatalf("expected a feedback frame after skip, got %T", sender.last())
	}
	if fb.IsCorrect {
		t.Error("a skip must be marked incorrect")
	}
	if fb.Score != 1 {
		t.Errorf("a skip must not change the score, got %d", fb.Score)
	}
	if fb.Explanation != "Question skipped. Try to answer the next one!" {
		t.Errorf("unexpected skip explanation %q", fb.Explanation)
	}

	// Q3 answered incorrectly.
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionNextQuestion}, sender)
	svc.HandleAction(ctx, session, models.ClientAction{
		Action:         models.ActionSubmitAnswer,
		SelectedOption: "wrong a",
	}, sender)
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionNextQuestion}, sender)

	summary, ok := sender.last().(*models.SummaryMessage)
	if !ok {
		t.Fatalf("expected a summary frame, got %T", sender.last())
	}
	if summary.Score != 1 || summary.TotalQuestions != 3 || summary.Percentage != 33 {
		t.Errorf("summary = %d/%d (%d%%), want 1/3 (33%%)", summary.Score, summary.TotalQuestions, summary.Percentage)
	}
}

func TestEndQuizMidSession(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: questionJSON(1)},
		llm.MockResponse{Text: questionJSON(2)},
		llm.MockResponse{Text: questionJSON(3)},
	)
	svc := newTestService(mock)
	sender := &captureSender{}
	ctx := context.Background()

	session := svc.CreateSession("es-ES", "en-US", "general", 5)
	if err := svc.StartQuiz(ctx, session, sender); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	// Answer two of five, then end.
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionSubmitAnswer, SelectedOption: "right 1"}, sender)
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionNextQuestion}, sender)
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionSubmitAnswer, SelectedOption: "wrong b"}, sender)
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionEndQuiz}, sender)

	summary, ok := sender.last().(*models.SummaryMessage)
	if !ok {
		t.Fatalf("expected a summary frame, got %T", sender.last())
	}
	if summary.Type != models.TypeQuizEndedEarly {
		t.Errorf("summary type = %q, want quiz_ended_early", summary.Type)
	}
	if summary.TotalQuestions != 2 {
		t.Errorf("an early summary reports answered questions only, got %d", summary.TotalQuestions)
	}
	if summary.Score != 1 || summary.Percentage != 50 {
		t.Errorf("summary = %d/%d (%d%%), want 1/2 (50%%)", summary.Score, summary.TotalQuestions, summary.Percentage)
	}
	if len(summary.Questions) != 2 {
		t.Errorf("early summary must only include answered questions, got %d", len(summary.Questions))
	}
}

func TestSummaryIsGeneratedExactlyOnce(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: questionJSON(1)})
	svc := newTestService(mock)
	sender := &captureSender{}
	ctx := context.Background()

	session := svc.CreateSession("es-ES", "en-US", "general", 1)
	if err := svc.StartQuiz(ctx, session, sender); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionSubmitAnswer, SelectedOption: "right 1"}, sender)
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionNextQuestion}, sender)

	got := len(sender.frames)
	if _, ok := sender.last().(*models.SummaryMessage); !ok {
		t.Fatalf("expected a summary frame, got %T", sender.last())
	}

	// Further terminal actions after the summary are silent no-ops.
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionNextQuestion}, sender)
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionEndQuiz}, sender)

	if len(sender.frames) != got {
		t.Errorf("post-summary actions produced %d extra frames", len(sender.frames)-got)
	}
}

func TestGenerationFailureLeavesStateUntouched(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := newTestService(mock)
	sender := &captureSender{}
	ctx := context.Background()

	session := svc.CreateSession("es-ES", "en-US", "general", 3)
	if err := svc.StartQuiz(ctx, session, sender); err == nil {
		t.Fatal("expected StartQuiz to report the generation failure")
	}

	errFrame, ok := sender.last().(*models.ErrorMessage)
	if !ok {
		t.Fatalf("expected an error frame, got %T", sender.last())
	}
	if errFrame.Error != "Failed to generate quiz question" {
		t.Errorf("unexpected error message %q", errFrame.Error)
	}

	state := session.Quiz
	if state.CurrentQuestion != 0 || state.Score != 0 || len(state.Questions) != 0 {
		t.Error("a failed generation must not advance the session")
	}
	if state.IsWaitingForAnswer {
		t.Error("a failed generation must not arm answer submission")
	}

	// The session is retryable: the next attempt delivers question 1.
	mock.AddResponse(llm.MockResponse{Text: questionJSON(1)})
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionNextQuestion}, sender)

	q, ok := sender.last().(*models.QuestionMessage)
	if !ok {
		t.Fatalf("expected a question frame on retry, got %T", sender.last())
	}
	if q.QuestionNumber != 1 {
		t.Errorf("retry must still be question 1, got %d", q.QuestionNumber)
	}
}

func TestSubmitWithoutOutstandingQuestion(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := newTestService(mock)
	sender := &captureSender{}

	session := svc.CreateSession("es-ES", "en-US", "general", 3)
	svc.HandleAction(context.Background(), session, models.ClientAction{
		Action:         models.ActionSubmitAnswer,
		SelectedOption: "anything",
	}, sender)

	errFrame, ok := sender.last().(*models.ErrorMessage)
	if !ok {
		t.Fatalf("expected an error frame, got %T", sender.last())
	}
	if errFrame.Error != "No question is awaiting an answer" {
		t.Errorf("unexpected error message %q", errFrame.Error)
	}
	if session.Quiz.CurrentQuestion != 0 || session.Quiz.Score != 0 {
		t.Error("a rejected submission must not change the session")
	}
}

func TestUnknownActionYieldsErrorFrame(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := newTestService(mock)
	sender := &captureSender{}

	session := svc.CreateSession("es-ES", "en-US", "general", 1)
	svc.HandleAction(context.Background(), session, models.ClientAction{Action: "dance"}, sender)

	errFrame, ok := sender.last().(*models.ErrorMessage)
	if !ok {
		t.Fatalf("expected an error frame, got %T", sender.last())
	}
	if errFrame.Error != "Unknown action: dance" {
		t.Errorf("unexpected error message %q", errFrame.Error)
	}
}

func TestDoubleSubmissionIsRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: questionJSON(1)})
	svc := newTestService(mock)
	sender := &captureSender{}
	ctx := context.Background()

	session := svc.CreateSession("es-ES", "en-US", "general", 2)
	if err := svc.StartQuiz(ctx, session, sender); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionSubmitAnswer, SelectedOption: "right 1"}, sender)
	svc.HandleAction(ctx, session, models.ClientAction{Action: models.ActionSubmitAnswer, SelectedOption: "right 1"}, sender)

	errFrame, ok := sender.last().(*models.ErrorMessage)
	if !ok {
		t.Fatalf("expected the second submission to be rejected, got %T", sender.last())
	}
	if errFrame.Error != "No question is awaiting an answer" {
		t.Errorf("unexpected error message %q", errFrame.Error)
	}
	if session.Quiz.Score != 1 {
		t.Errorf("score must stay at 1, got %d", session.Quiz.Score)
	}
}
