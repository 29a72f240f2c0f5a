package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"guidedawg/app/config"
	"guidedawg/app/service/conversation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Service is the HTTP chat surface. It owns the session registry: one
// conversation.State per session, with a per-session lock so turns within a
// session are strictly sequential.
type Service struct {
	cfg             *config.Config
	conversationSvc *conversation.Service
	app             *fiber.App

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu    sync.Mutex
	state *conversation.State
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		sessions:        make(map[string]*session),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/health", s.handleHealth)
	app.Post("/api/chat", s.handleChat)

	s.app = app

	return s, nil
}

// App exposes the underlying fiber app for tests.
func (s *Service) App() *fiber.App {
	return s.app
}

func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Chat API listening", "addr", s.cfg.Server.Listen)

		if err := s.app.Listen(s.cfg.Server.Listen); err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = s.app.ShutdownWithContext(shutdownCtx)

		return ctx.Err()
	})

	return g.Wait()
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func (s *Service) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Service) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	sess := s.session(req.SessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	start := time.Now()

	reply, err := s.conversationSvc.ProcessTurn(c.Context(), sess.state, req.Message)
	if err != nil {
		slog.Error("Failed to process turn",
			"session_id", req.SessionID,
			"error", err,
		)

		return fiber.NewError(fiber.StatusBadGateway, "failed to generate reply")
	}

	slog.Info("Processed turn",
		"session_id", req.SessionID,
		"duration", time.Since(start),
	)

	return c.JSON(chatResponse{
		SessionID: req.SessionID,
		Reply:     reply,
	})
}

func (s *Service) session(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[id]; ok {
		return existing
	}

	created := &session{state: conversation.NewState()}
	s.sessions[id] = created

	return created
}
