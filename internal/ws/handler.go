package ws

import (
	"log"
	"net/http"
	"strings"
	"time"

	"talent-hive/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// Handler upgrades authenticated requests into notification subscribers.
// Role checks happen in front of it; it only enforces the origin policy.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHandler builds the notification endpoint. With no allowed origins the
// upgrader falls back to gorilla's same-host check.
func NewHandler(hub *Hub, allowedOrigins []string, logger *log.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin:      originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// Non-browser clients send no Origin.
			return true
		}
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}

func (h *Handler) HandleNotifications(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.hub.Stopped() {
		return fiber.ErrServiceUnavailable
	}

	subject, _ := c.Locals(middleware.CtxSubjectKey).(string)

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logf("[WS] Upgrade failed subject=%s origin=%q err=%v", subject, r.Header.Get("Origin"), err)
			return
		}

		client := NewClient(h.hub, conn)
		if err := h.hub.Register(client); err != nil {
			h.logf("[WS] Subscribe rejected subject=%s err=%v", subject, err)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			_ = conn.Close()
			return
		}
		h.logf("[WS] Subscribed subject=%s", subject)

		go client.WritePump()
		go client.ReadPump()
	})(c)
}

func (h *Handler) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
