package quiz

import (
	"fmt"
	"strings"

	"github.com/KanishkSogani/VocaLearn/pkg/models"
)

// Fixed feedback texts.
const (
	feedbackCorrect      = "Correct! Well done!"
	explanationCorrect   = "Great job! You selected the right answer."
	explanationIncorrect = "Don't worry, keep practicing to improve!"
	explanationSkipped   = "Question skipped. Try to answer the next one!"
	feedbackIncorrect    = "Incorrect. The correct answer is: %s"
)

// Evaluate scores the submitted option against the current question and
// returns the feedback frame. An empty or whitespace-only submission counts
// as a skip: no score change, isCorrect false.
//
// Side effects: records userAnswer/isCorrect on the stored question,
// advances the question index and clears isWaitingForAnswer.
func Evaluate(state *models.QuizState, selectedOption string) *models.FeedbackMessage {
	current := &state.Questions[state.CurrentQuestion]
	current.UserAnswer = selectedOption

	msg := &models.FeedbackMessage{
		Type:             models.TypeQuizFeedback,
		CorrectAnswer:    current.CorrectAnswer,
		CurrentQuestion:  state.CurrentQuestion + 1,
		TotalQuestions:   state.TotalQuestions,
		HasMoreQuestions: state.CurrentQuestion+1 < state.TotalQuestions,
	}

	if strings.TrimSpace(selectedOption) == "" {
		isCorrect := false
		current.IsCorrect = &isCorrect
		msg.IsCorrect = false
		msg.Explanation = explanationSkipped
		msg.Score = state.Score
	} else {
		// Exact match after trimming only. No case folding, no diacritic
		// normalization: strictness is intentional for option-based answers.
		isCorrect := strings.TrimSpace(selectedOption) == strings.TrimSpace(current.CorrectAnswer)
		current.IsCorrect = &isCorrect

		if isCorrect {
			state.Score++
			msg.Feedback = feedbackCorrect
			msg.Explanation = explanationCorrect
		} else {
			msg.Feedback = fmt.Sprintf(feedbackIncorrect, current.CorrectAnswer)
			msg.Explanation = explanationIncorrect
		}
		msg.IsCorrect = isCorrect
		msg.Score = state.Score
	}

	state.CurrentQuestion++
	state.IsWaitingForAnswer = false

	return msg
}
