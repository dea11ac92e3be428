package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"replygen/app/config"
	"replygen/app/model"
	"replygen/app/service/completion"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Generator produces a reply for a request.
type Generator interface {
	Generate(ctx context.Context, req model.GenerateRequest) (string, error)
}

type Service struct {
	cfg       *config.Config
	generator Generator
	validate  *validator.Validate
	app       *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*config.Config](di),
		do.MustInvoke[*completion.Service](di),
	), nil
}

func NewService(cfg *config.Config, generator Generator) *Service {
	s := &Service{
		cfg:       cfg,
		generator: generator,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}

	app := fiber.New(fiber.Config{
		AppName:               "replygen",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logRequests)

	api := app.Group("/api")
	api.Post("/generate", s.handleGenerate)
	api.Get("/health", s.handleHealth)

	s.app = app

	return s
}

// App exposes the fiber app, mostly for tests.
func (s *Service) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Gateway listening", "addr", s.cfg.Server.Addr)
		return s.app.Listen(s.cfg.Server.Addr)
	})

	g.Go(func() error {
		<-ctx.Done()
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func (s *Service) handleGenerate(c *fiber.Ctx) error {
	var req model.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("Failed to parse generate request", "error", err)
		return failure(c, fiber.StatusInternalServerError)
	}

	if err := s.validate.Struct(req); err != nil {
		slog.Warn("Invalid generate request", "error", err)
		return failure(c, fiber.StatusBadRequest)
	}

	reply, err := s.generator.Generate(c.UserContext(), req)
	if err != nil {
		slog.Error("Failed to generate reply",
			"tone", req.Tone,
			"intensity", req.Intensity,
			"error", err,
		)
		return failure(c, fiber.StatusInternalServerError)
	}

	return c.JSON(model.GenerateResponse{Reply: reply})
}

func (s *Service) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func failure(c *fiber.Ctx, status int) error {
	return c.Status(status).JSON(model.GenerateResponse{Reply: completion.FailureReply})
}

func logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	slog.Debug("Handled request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)

	return err
}
