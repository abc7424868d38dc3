package handlers

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"

	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"

	"github.com/KanishkSogani/VocaLearn/pkg/models"
	"github.com/KanishkSogani/VocaLearn/pkg/services"
	wsregistry "github.com/KanishkSogani/VocaLearn/pkg/websocket"
)

// QuizHandler owns the quiz WebSocket endpoint: handshake, session
// creation, the per-connection read loop and teardown.
type QuizHandler struct {
	sessionService *services.SessionService
	registry       *wsregistry.Registry
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(sessionService *services.SessionService, registry *wsregistry.Registry) *QuizHandler {
	return &QuizHandler{
		sessionService: sessionService,
		registry:       registry,
	}
}

var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and runs one quiz session over it.
// The handshake carries the quiz parameters as query values:
//
//	/ws?mode=quiz&learningLanguage=es-ES&nativeLanguage=en-US&questions=5&topic=general
func (h *QuizHandler) HandleWebSocket(ctx *fasthttp.RequestCtx) {
	// Query values must be read before the upgrade; the RequestCtx is not
	// valid inside the connection callback.
	args := ctx.QueryArgs()
	mode := string(args.Peek("mode"))
	learningLanguage := string(args.Peek("learningLanguage"))
	nativeLanguage := string(args.Peek("nativeLanguage"))
	topic := string(args.Peek("topic"))
	questions, _ := strconv.Atoi(string(args.Peek("questions")))

	if mode != "quiz" {
		ctx.Error("Unsupported mode", fasthttp.StatusBadRequest)
		return
	}
	if learningLanguage == "" || nativeLanguage == "" {
		ctx.Error("learningLanguage and nativeLanguage are required", fasthttp.StatusBadRequest)
		return
	}

	err := upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
		defer conn.Close()

		session := h.sessionService.CreateSession(learningLanguage, nativeLanguage, topic, questions)
		h.registry.Register(conn, session)
		defer h.registry.Unregister(conn)

		sender := &connSender{conn: conn}

		// Closing the connection cancels nothing server-side: an in-flight
		// generation is allowed to finish and its result is discarded with
		// the session.
		sessionCtx := context.Background()

		// The first question goes out as soon as the session exists. On
		// failure the client already got an error frame and may retry with
		// next_question.
		if err := h.sessionService.StartQuiz(sessionCtx, session, sender); err != nil {
			log.Printf("⚠️ Session %s: initial question failed: %v", session.ID, err)
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("Session %s: read error: %v", session.ID, err)
				}
				return
			}

			var action models.ClientAction
			if err := json.Unmarshal(data, &action); err != nil {
				if sendErr := sender.Send(&models.ErrorMessage{Error: "Invalid message format"}); sendErr != nil {
					return
				}
				continue
			}

			h.sessionService.HandleAction(sessionCtx, session, action, sender)
		}
	})
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
	}
}

// connSender serializes writes to one WebSocket connection.
type connSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *connSender) Send(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}
