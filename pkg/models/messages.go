package models

// Client actions accepted over the quiz WebSocket.
const (
	ActionSubmitAnswer = "submit_answer"
	ActionSkipQuestion = "skip_question"
	ActionNextQuestion = "next_question"
	ActionEndQuiz      = "end_quiz"
)

// Server frame types.
const (
	TypeQuizQuestion   = "quiz_question"
	TypeQuizFeedback   = "quiz_feedback"
	TypeQuizSummary    = "quiz_summary"
	TypeQuizEndedEarly = "quiz_ended_early"
)

// ClientAction is a message received from the quiz client.
type ClientAction struct {
	Action         string `json:"action"`
	SelectedOption string `json:"selectedOption,omitempty"`
}

// QuestionMessage delivers a question to the client. The correct answer is
// deliberately withheld until feedback.
type QuestionMessage struct {
	Type           string       `json:"type"`
	Question       string       `json:"question"`
	QuestionType   QuestionType `json:"questionType"`
	Options        []string     `json:"options"`
	QuestionNumber int          `json:"questionNumber"`
	TotalQuestions int          `json:"totalQuestions"`
}

// FeedbackMessage reports the result of one answered question.
// CurrentQuestion is 1-indexed and refers to the question just answered.
type FeedbackMessage struct {
	Type             string `json:"type"`
	IsCorrect        bool   `json:"isCorrect"`
	CorrectAnswer    string `json:"correctAnswer"`
	Feedback         string `json:"feedback,omitempty"`
	Explanation      string `json:"explanation,omitempty"`
	Score            int    `json:"score"`
	CurrentQuestion  int    `json:"currentQuestion"`
	TotalQuestions   int    `json:"totalQuestions"`
	HasMoreQuestions bool   `json:"hasMoreQuestions"`
}

// SummaryMessage is the terminal report for a quiz. Type is quiz_summary for
// a quiz that ran to completion and quiz_ended_early when the client ended it.
// DetailedFeedback is nil when the narrative generation failed; the numeric
// fields are always present.
type SummaryMessage struct {
	Type             string            `json:"type"`
	Score            int               `json:"score"`
	TotalQuestions   int               `json:"totalQuestions"`
	Percentage       int               `json:"percentage"`
	Questions        []QuizQuestion    `json:"questions"`
	DetailedFeedback *DetailedFeedback `json:"detailedFeedback,omitempty"`
}

// DetailedFeedback is the narrative assessment attached to a summary.
type DetailedFeedback struct {
	GrammarScore           int                    `json:"grammarScore"`
	VocabularyScore        int                    `json:"vocabularyScore"`
	ComprehensionScore     int                    `json:"comprehensionScore"`
	OverallScore           int                    `json:"overallScore"`
	Feedback               string                 `json:"feedback"`
	StrengthsAndWeaknesses StrengthsAndWeaknesses `json:"strengthsAndWeaknesses"`
}

// StrengthsAndWeaknesses breaks the narrative down into actionable lists.
type StrengthsAndWeaknesses struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// ErrorMessage is the error frame sent when an action cannot be served.
type ErrorMessage struct {
	Error string `json:"error"`
}
