package models

import "time"

// QuestionType identifies one of the four supported quiz question formats.
type QuestionType string

const (
	GrammarPattern           QuestionType = "grammar_pattern"
	SynonymAntonym           QuestionType = "synonym_antonym"
	DefinitionMatching       QuestionType = "definition_matching"
	PronunciationMinimalPair QuestionType = "pronunciation_minimal_pair"
)

// QuestionTypes lists every supported question type. Callers pick one
// (usually at random) before asking the generator for a question.
var QuestionTypes = []QuestionType{
	GrammarPattern,
	SynonymAntonym,
	DefinitionMatching,
	PronunciationMinimalPair,
}

// Topics that a quiz can be scoped to.
var Topics = []string{"general", "grammar", "vocabulary", "culture", "conversation"}

// ValidTopic reports whether topic is one of the supported quiz topics.
func ValidTopic(topic string) bool {
	for _, t := range Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// QuizQuestion is a single multiple-choice question delivered to the client.
// CorrectAnswer always matches one of the four Options (modulo trimming);
// questions that cannot guarantee this are replaced by the fallback question
// before they reach a session.
type QuizQuestion struct {
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	UserAnswer    string       `json:"userAnswer,omitempty"`
	IsCorrect     *bool        `json:"isCorrect,omitempty"`
}

// QuizState is the per-session quiz progress. It is owned by the Session
// and mutated only by the session service and its delegates.
type QuizState struct {
	CurrentQuestion    int            `json:"currentQuestion"`
	TotalQuestions     int            `json:"totalQuestions"`
	Score              int            `json:"score"`
	Topic              string         `json:"topic"`
	Questions          []QuizQuestion `json:"questions"`
	QuestionHistory    []string       `json:"questionHistory"`
	IsWaitingForAnswer bool           `json:"isWaitingForAnswer"`
	SummaryGenerated   bool           `json:"summaryGenerated"`
}

// Session holds the server-side state for one connected quiz client.
type Session struct {
	ID               string     `json:"id"`
	LearningLanguage string     `json:"learningLanguage"`
	NativeLanguage   string     `json:"nativeLanguage"`
	Quiz             *QuizState `json:"quiz,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// QuizResult is the terminal artifact archived when a quiz finishes.
type QuizResult struct {
	SessionID        string         `json:"sessionId"`
	LearningLanguage string         `json:"learningLanguage"`
	NativeLanguage   string         `json:"nativeLanguage"`
	Topic            string         `json:"topic"`
	Score            int            `json:"score"`
	TotalQuestions   int            `json:"totalQuestions"`
	Percentage       int            `json:"percentage"`
	EndedEarly       bool           `json:"endedEarly"`
	Questions        []QuizQuestion `json:"questions"`
	CompletedAt      time.Time      `json:"completedAt"`
}

// LeaderboardEntry is one row of the results leaderboard.
type LeaderboardEntry struct {
	Position         int    `json:"position"`
	SessionID        string `json:"sessionId"`
	LearningLanguage string `json:"learningLanguage"`
	Score            int    `json:"score"`
	TotalQuestions   int    `json:"totalQuestions"`
	Percentage       int    `json:"percentage"`
}

// LeaderboardResponse wraps the leaderboard rows with totals.
type LeaderboardResponse struct {
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
	TotalResults int                `json:"totalResults"`
}

// APIResponse is the standard envelope for REST responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
