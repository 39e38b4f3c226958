package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID  = "X-Request-ID"
	CtxRequestIDKey  = "request_id"
	maxRequestIDSize = 128
)

type AccessLogMiddleware struct {
	logger    *log.Logger
	skipPaths map[string]bool
}

// NewAccessLogMiddleware logs one line per request. Paths in skip (for
// example probes) still get a request id but are not logged.
func NewAccessLogMiddleware(logger *log.Logger, skip ...string) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	m := &AccessLogMiddleware{logger: logger, skipPaths: make(map[string]bool, len(skip))}
	for _, p := range skip {
		m.skipPaths[p] = true
	}
	return m
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := strings.TrimSpace(c.Get(HeaderRequestID))
		if rid == "" || len(rid) > maxRequestIDSize {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		if m.skipPaths[c.Path()] {
			return err
		}

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		m.logger.Printf(
			"[HTTP] Access rid=%s ip=%s method=%s path=%s status=%d latency=%s resp_bytes=%d ua=%q",
			rid, c.IP(), c.Method(), c.OriginalURL(), status, time.Since(start), len(c.Response().Body()), c.Get("User-Agent"),
		)

		return err
	}
}

// RequestID returns the id assigned by the access log middleware.
func RequestID(c fiber.Ctx) string {
	rid, _ := c.Locals(CtxRequestIDKey).(string)
	return rid
}
