package assistantHandler

import (
	assistantService "JarvisGolang/internal/api/assistant/service"
	"JarvisGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant")

	// All assistant endpoints require authentication
	assistant.Use(h.middleware.NewTokenMiddleware)

	// Command processing
	assistant.Post("/command", h.ProcessCommand)

	// Classifier training and corpus upload
	assistant.Post("/train", h.Train)
	assistant.Post("/samples", h.AddSample)

	// Processed-command audit log
	assistant.Get("/logs", h.GetCommandLogs)

	// Conversation context
	assistant.Get("/history", h.GetHistory)
	assistant.Delete("/context", h.ClearContext)
}
