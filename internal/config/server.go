package config

import (
	"JarvisGolang/database/postgres"
	assistantHandler "JarvisGolang/internal/api/assistant/handler"
	assistantRepository "JarvisGolang/internal/api/assistant/repository"
	assistantService "JarvisGolang/internal/api/assistant/service"
	"JarvisGolang/internal/middleware"
	"JarvisGolang/internal/plugin"
	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/inference"
	"JarvisGolang/pkg/ner"
	openaiPkg "JarvisGolang/pkg/openai"
	"JarvisGolang/pkg/redis"
	"JarvisGolang/pkg/utils"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine          *fiber.App
	db              *sqlx.DB
	log             *logrus.Logger
	middleware      middleware.Middleware
	validator       *validator.Validate
	utils           utils.IUtils
	handlers        []handler
	redisServer     redis.IRedis
	inferenceClient inference.IInference
	generalChat     openaiPkg.IGeneralChat
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithInferenceClient() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before inference client")
		}
		s.inferenceClient = inference.New(s.log)
		return nil
	}
}

func WithGeneralChat() ServerOption {
	return func(s *Server) error {
		s.generalChat = openaiPkg.NewGeneralChat()
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Assistant Domain
	assistantRepo := assistantRepository.New(s.db, s.log)

	registry := plugin.NewRegistry(
		plugin.NewWeather(s.log),
		plugin.NewNews(s.log),
		plugin.NewMusic(s.log),
		plugin.NewClock(s.log),
		plugin.NewReminders(s.log),
	)
	fallback := plugin.NewFallback(s.generalChat, s.log)

	conversations := conversation.NewManager(historyCapacity(), func() string {
		id, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			return ""
		}
		return id
	})

	assistantServices := assistantService.New(
		s.log,
		assistantRepo,
		s.inferenceClient,
		ner.NewRuleMatcher(),
		registry,
		fallback,
		conversations,
		s.redisServer,
		s.utils,
	)
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, assistantHandlers)
}

// historyCapacity reads the per-user conversation history bound,
// falling back to the store default when unset or invalid.
func historyCapacity() int {
	if raw := os.Getenv("CONVERSATION_HISTORY_SIZE"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return conversation.DefaultCapacity
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
