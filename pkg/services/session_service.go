package services

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/KanishkSogani/VocaLearn/pkg/models"
	"github.com/KanishkSogani/VocaLearn/pkg/quiz"
)

const (
	defaultQuestions = 5
	maxQuestions     = 20
)

// Sender delivers one server frame to the client. The WebSocket handler
// implements it over the connection; tests implement it with a slice.
type Sender interface {
	Send(v interface{}) error
}

// SessionService drives the per-connection quiz state machine: it sequences
// question generation, answer evaluation and summary production. Operations
// on one session are strictly sequential (one outstanding question at a
// time); independent sessions run in parallel without shared state.
type SessionService struct {
	generator     *quiz.Generator
	summarizer    *quiz.Summarizer
	results       *ResultService
	oracleTimeout time.Duration
}

// NewSessionService creates a SessionService. results may be nil when no
// archive is configured.
func NewSessionService(generator *quiz.Generator, summarizer *quiz.Summarizer, results *ResultService, oracleTimeout time.Duration) *SessionService {
	return &SessionService{
		generator:     generator,
		summarizer:    summarizer,
		results:       results,
		oracleTimeout: oracleTimeout,
	}
}

// CreateSession builds a session from handshake parameters. Out-of-range
// question counts are clamped to [1, 20] and unknown topics fall back to
// "general".
func (s *SessionService) CreateSession(learningLanguage, nativeLanguage, topic string, totalQuestions int) *models.Session {
	if totalQuestions < 1 {
		totalQuestions = defaultQuestions
	}
	if totalQuestions > maxQuestions {
		totalQuestions = maxQuestions
	}
	if !models.ValidTopic(topic) {
		topic = "general"
	}

	return &models.Session{
		ID:               uuid.New().String(),
		LearningLanguage: learningLanguage,
		NativeLanguage:   nativeLanguage,
		Quiz: &models.QuizState{
			TotalQuestions:  totalQuestions,
			Topic:           topic,
			Questions:       []models.QuizQuestion{},
			QuestionHistory: []string{},
		},
		CreatedAt: time.Now(),
	}
}

// StartQuiz delivers the first question of a fresh session.
func (s *SessionService) StartQuiz(ctx context.Context, session *models.Session, sender Sender) error {
	return s.askNextQuestion(ctx, session, sender)
}

// HandleAction dispatches one client action. Every action results in exactly
// one server frame, except the post-summary no-ops mandated by the
// session-end policy.
func (s *SessionService) HandleAction(ctx context.Context, session *models.Session, action models.ClientAction, sender Sender) {
	state := session.Quiz

	switch action.Action {
	case models.ActionSubmitAnswer:
		s.handleAnswer(session, action.SelectedOption, sender)

	case models.ActionSkipQuestion:
		// A skip is an empty submission.
		s.handleAnswer(session, "", sender)

	case models.ActionNextQuestion:
		if state.SummaryGenerated {
			log.Printf("Session %s: next_question after summary, ignoring", session.ID)
			return
		}
		if state.CurrentQuestion < state.TotalQuestions {
			s.askNextQuestion(ctx, session, sender)
		} else {
			s.finishQuiz(ctx, session, sender)
		}

	case models.ActionEndQuiz:
		if state.SummaryGenerated {
			log.Printf("Session %s: end_quiz after summary, ignoring", session.ID)
			return
		}
		log.Printf("🏁 Session %s: quiz ended by client at question %d/%d", session.ID, state.CurrentQuestion, state.TotalQuestions)
		s.finishQuiz(ctx, session, sender)

	default:
		s.sendError(sender, "Unknown action: "+action.Action)
	}
}

// handleAnswer evaluates a submission against the outstanding question.
func (s *SessionService) handleAnswer(session *models.Session, selectedOption string, sender Sender) {
	state := session.Quiz

	if !state.IsWaitingForAnswer || state.CurrentQuestion >= len(state.Questions) {
		s.sendError(sender, "No question is awaiting an answer")
		return
	}

	log.Printf("Session %s: evaluating answer %q for question %d/%d", session.ID, selectedOption, state.CurrentQuestion+1, state.TotalQuestions)

	feedback := quiz.Evaluate(state, selectedOption)
	if err := sender.Send(feedback); err != nil {
		log.Printf("⚠️ Session %s: sending feedback: %v", session.ID, err)
	}

	if state.CurrentQuestion >= state.TotalQuestions {
		log.Printf("Session %s: last question completed", session.ID)
	}
}

// askNextQuestion generates and delivers the next question. On generation
// failure the client gets an error frame and the session state is left
// untouched, so the client can retry.
func (s *SessionService) askNextQuestion(ctx context.Context, session *models.Session, sender Sender) error {
	state := session.Quiz

	log.Printf("Session %s: generating question %d/%d", session.ID, state.CurrentQuestion+1, state.TotalQuestions)

	qType := models.QuestionTypes[rand.IntN(len(models.QuestionTypes))]

	genCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	question, err := s.generator.Generate(genCtx, quiz.GenerateInput{
		Type:             qType,
		LearningLanguage: session.LearningLanguage,
		NativeLanguage:   session.NativeLanguage,
		Topic:            state.Topic,
		History:          state.QuestionHistory,
	})
	if err != nil {
		log.Printf("❌ Session %s: question generation failed: %v", session.ID, err)
		s.sendError(sender, "Failed to generate quiz question")
		return err
	}

	state.QuestionHistory = append(state.QuestionHistory, question.Question)
	state.Questions = append(state.Questions, *question)

	msg := &models.QuestionMessage{
		Type:           models.TypeQuizQuestion,
		Question:       question.Question,
		QuestionType:   question.Type,
		Options:        question.Options,
		QuestionNumber: state.CurrentQuestion + 1,
		TotalQuestions: state.TotalQuestions,
	}
	if err := sender.Send(msg); err != nil {
		log.Printf("⚠️ Session %s: sending question: %v", session.ID, err)
		return err
	}

	state.IsWaitingForAnswer = true
	return nil
}

// finishQuiz builds and delivers the summary exactly once, then archives the
// result. Archive failures are logged, never surfaced.
func (s *SessionService) finishQuiz(ctx context.Context, session *models.Session, sender Sender) {
	state := session.Quiz
	state.SummaryGenerated = true
	state.IsWaitingForAnswer = false

	sumCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	summary := s.summarizer.Build(sumCtx, session)
	if err := sender.Send(summary); err != nil {
		log.Printf("⚠️ Session %s: sending summary: %v", session.ID, err)
	}

	log.Printf("✅ Session %s: quiz finished, score %d/%d (%d%%)", session.ID, summary.Score, summary.TotalQuestions, summary.Percentage)

	if s.results != nil {
		if err := s.results.SaveResult(session, summary); err != nil {
			log.Printf("⚠️ Session %s: archiving result: %v", session.ID, err)
		}
	}
}

func (s *SessionService) sendError(sender Sender, message string) {
	if err := sender.Send(&models.ErrorMessage{Error: message}); err != nil {
		log.Printf("⚠️ Sending error frame: %v", err)
	}
}
