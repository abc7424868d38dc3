package main

import (
	"context"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"github.com/KanishkSogani/VocaLearn/pkg/config"
	"github.com/KanishkSogani/VocaLearn/pkg/handlers"
	"github.com/KanishkSogani/VocaLearn/pkg/llm"
	"github.com/KanishkSogani/VocaLearn/pkg/quiz"
	"github.com/KanishkSogani/VocaLearn/pkg/redis"
	"github.com/KanishkSogani/VocaLearn/pkg/services"
	wsregistry "github.com/KanishkSogani/VocaLearn/pkg/websocket"
)

var (
	quizHandler *handlers.QuizHandler
	apiHandler  *handlers.APIHandler
)

func main() {
	log.Println("🚀 Starting VocaLearn quiz server")

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Error loading configuration: %v", err)
	}

	provider, err := llm.NewProvider(context.Background(), cfg.LLMConfig())
	if err != nil {
		log.Fatalf("❌ Error initializing LLM provider: %v", err)
	}
	log.Printf("🧠 Using LLM provider %q (model %s)", cfg.LLM.Provider, provider.ModelID())

	log.Printf("🔌 Connecting to Redis at %s...", cfg.Redis.Addr)
	redisClient, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		// Quizzes run without the archive; only results and the leaderboard
		// are lost.
		log.Printf("⚠️ Redis unavailable, result archive disabled: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	initHandlers(cfg, provider, redisClient)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Name:    "VocaLearn Quiz Server",
	}

	log.Printf("🎮 Quiz WebSocket: ws://localhost%s/ws", cfg.Addr)
	log.Printf("🔧 API Health: http://localhost%s/api/health", cfg.Addr)
	log.Printf("🏆 Leaderboard: http://localhost%s/api/leaderboard", cfg.Addr)

	if err := server.ListenAndServe(cfg.Addr); err != nil {
		log.Fatalf("Error starting the server: %v", err)
	}
}

func initHandlers(cfg *config.Config, provider llm.Provider, redisClient *redis.Client) {
	log.Println("⚙️  Initializing services...")

	generator := quiz.NewGenerator(provider)
	summarizer := quiz.NewSummarizer(provider)

	var resultService *services.ResultService
	if redisClient != nil {
		resultService = services.NewResultService(redisClient)
	}
	sessionService := services.NewSessionService(generator, summarizer, resultService, cfg.LLM.Timeout)

	registry := wsregistry.NewRegistry()

	quizHandler = handlers.NewQuizHandler(sessionService, registry)
	apiHandler = handlers.NewAPIHandler(resultService, registry)
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	ctx.Response.Header.Set("Server", "VocaLearn/1.0")
	ctx.Response.Header.Set("Cache-Control", "no-cache")

	// CORS headers for the web client.
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if method == "OPTIONS" {
		ctx.SetStatusCode(fasthttp.StatusOK)
		return
	}

	switch {
	case path == "/ws":
		quizHandler.HandleWebSocket(ctx)

	case path == "/api/health":
		apiHandler.HealthCheck(ctx)
	case path == "/api/leaderboard" && method == "GET":
		apiHandler.GetLeaderboard(ctx)
	case path == "/api/sessions/active" && method == "GET":
		apiHandler.GetActiveSessions(ctx)

	case strings.HasPrefix(path, "/api/results/") && method == "GET":
		// /api/results/{id}
		parts := strings.Split(path, "/")
		if len(parts) == 4 && parts[3] != "" {
			ctx.SetUserValue("id", parts[3])
			apiHandler.GetResult(ctx)
		} else {
			serve404(ctx)
		}

	default:
		serve404(ctx)
	}
}

func serve404(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusNotFound)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"success":false,"error":"Not found"}`)
}
