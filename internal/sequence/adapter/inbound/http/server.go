package http_handler

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/anthanhphan/go-sequence-service/internal/sequence/config"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/port"
	"github.com/anthanhphan/go-sequence-service/pkg/idgen"
	"github.com/anthanhphan/go-sequence-service/pkg/resilience"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
)

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.SequenceService
	probe   port.AuthorityProbe
}

func NewServer(cfg *config.Config, service port.SequenceService, probe port.AuthorityProbe) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		UnescapePath:          true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
		probe:   probe,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/ids/:name", s.handleNext(false))
	s.app.Get("/ids/:name/global", s.handleNext(true))
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	if s.probe != nil {
		if err := s.probe.Ping(c.UserContext()); err != nil {
			sdklogger.Warnw("Range authority health check failed", "error", err.Error())
			return s.sendJSONError(c, fiber.StatusServiceUnavailable, "range authority unavailable")
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleNext(global bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Params points into fiber's pooled buffer; the name outlives the request
		// as a registry key.
		name := utils.CopyString(c.Params("name"))

		countParam := c.Query("count")
		if countParam == "" {
			id, err := s.service.NextID(c.UserContext(), name, global)
			if err != nil {
				return s.sendAllocError(c, name, global, err)
			}
			return c.JSON(fiber.Map{"name": name, "global": global, "id": id})
		}

		count, err := strconv.Atoi(countParam)
		if err != nil {
			return s.sendJSONError(c, fiber.StatusBadRequest, "'count' must be an integer")
		}
		ids, err := s.service.NextBatch(c.UserContext(), name, global, count)
		if err != nil {
			return s.sendAllocError(c, name, global, err)
		}
		return c.JSON(fiber.Map{"name": name, "global": global, "ids": ids})
	}
}

func (s *Server) sendAllocError(c *fiber.Ctx, name string, global bool, err error) error {
	status := statusFor(err)
	switch {
	case status >= fiber.StatusInternalServerError:
		sdklogger.Errorw("Id allocation failed", "name", name, "global", global, "error", err.Error())
	default:
		sdklogger.Warnw("Id allocation rejected", "name", name, "global", global, "error", err.Error())
	}

	var openErr *resilience.CircuitOpenError
	if errors.As(err, &openErr) {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(openErr.RetryAfter)))
	}
	return s.sendJSONError(c, status, err.Error())
}

// statusFor maps allocation errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, idgen.ErrInvalidConfig), errors.Is(err, port.ErrInvalidBatchSize):
		return fiber.StatusBadRequest
	case errors.Is(err, idgen.ErrCapacityExhausted):
		return fiber.StatusConflict
	case idgen.IsRetryable(err):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
