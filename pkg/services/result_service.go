package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/KanishkSogani/VocaLearn/pkg/models"
	"github.com/KanishkSogani/VocaLearn/pkg/redis"
)

const (
	resultKeyPrefix = "vocalearn:result:"
	resultsSetKey   = "vocalearn:results"
	resultTTL       = 24 * time.Hour
	leaderboardSize = 20
)

// ResultService archives finished quizzes in Redis and serves the
// leaderboard. Live session state never touches Redis; only terminal
// reports are stored, with a TTL so the archive stays bounded.
type ResultService struct {
	redisClient *redis.Client
}

// NewResultService creates a ResultService backed by the given Redis client.
func NewResultService(redisClient *redis.Client) *ResultService {
	return &ResultService{redisClient: redisClient}
}

// SaveResult archives the terminal report of a finished quiz.
func (s *ResultService) SaveResult(session *models.Session, summary *models.SummaryMessage) error {
	result := models.QuizResult{
		SessionID:        session.ID,
		LearningLanguage: session.LearningLanguage,
		NativeLanguage:   session.NativeLanguage,
		Topic:            session.Quiz.Topic,
		Score:            summary.Score,
		TotalQuestions:   summary.TotalQuestions,
		Percentage:       summary.Percentage,
		EndedEarly:       summary.Type == models.TypeQuizEndedEarly,
		Questions:        summary.Questions,
		CompletedAt:      time.Now(),
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("serializing result: %w", err)
	}

	key := resultKeyPrefix + session.ID
	if err := s.redisClient.Set(key, string(resultJSON), resultTTL); err != nil {
		return fmt.Errorf("storing result: %w", err)
	}

	if err := s.redisClient.AddToSet(resultsSetKey, session.ID); err != nil {
		log.Printf("⚠️ Adding result %s to index: %v", session.ID, err)
	}

	return nil
}

// GetResult returns the archived result for a session ID.
func (s *ResultService) GetResult(sessionID string) (*models.QuizResult, error) {
	resultJSON, err := s.redisClient.Get(resultKeyPrefix + sessionID)
	if err != nil {
		return nil, fmt.Errorf("result not found: %w", err)
	}

	var result models.QuizResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("parsing result: %w", err)
	}

	return &result, nil
}

// GetLeaderboard returns recent results ranked by percentage. Entries whose
// underlying result has expired are pruned from the index as a side effect.
func (s *ResultService) GetLeaderboard() (*models.LeaderboardResponse, error) {
	ids, err := s.redisClient.GetSetMembers(resultsSetKey)
	if err != nil {
		return nil, fmt.Errorf("reading result index: %w", err)
	}

	var results []models.QuizResult
	for _, id := range ids {
		result, err := s.GetResult(id)
		if err != nil {
			// Expired result; drop the stale index entry.
			if remErr := s.redisClient.RemoveFromSet(resultsSetKey, id); remErr != nil {
				log.Printf("⚠️ Pruning stale result %s: %v", id, remErr)
			}
			continue
		}
		results = append(results, *result)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Percentage != results[j].Percentage {
			return results[i].Percentage > results[j].Percentage
		}
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})

	if len(results) > leaderboardSize {
		results = results[:leaderboardSize]
	}

	entries := make([]models.LeaderboardEntry, len(results))
	for i, r := range results {
		entries[i] = models.LeaderboardEntry{
			Position:         i + 1,
			SessionID:        r.SessionID,
			LearningLanguage: r.LearningLanguage,
			Score:            r.Score,
			TotalQuestions:   r.TotalQuestions,
			Percentage:       r.Percentage,
		}
	}

	return &models.LeaderboardResponse{
		Leaderboard:  entries,
		TotalResults: len(entries),
	}, nil
}

// HealthCheck verifies the archive backend is reachable.
func (s *ResultService) HealthCheck() error {
	return s.redisClient.HealthCheck()
}
