package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/middleware"
	"github.com/noah-isme/drivedesk-api/internal/observability"
	"github.com/noah-isme/drivedesk-api/internal/service"
	"github.com/noah-isme/drivedesk-api/internal/utils"
)

const channelLocal = "notification_channel"

// NotificationHandler manages notification feeds and their live streams.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
	timeout time.Duration
}

// NewNotificationHandler constructs a handler instance.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger, timeout time.Duration) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "notification_handler").Logger(),
		timeout: timeout,
	}
}

// Register binds the notification routes.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/stream", h.stream)
	router.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		c.Locals(channelLocal, subscriptionChannel(c))
		c.Locals("request_ctx", withRequestContext(c))
		return c.Next()
	})
	router.Get("/ws", websocket.New(h.handleConnection))
	router.Patch("/read-all", h.markAllRead)
	router.Patch("/:id/read", h.markRead)
}

func subscriptionChannel(c *fiber.Ctx) string {
	if officeID := middleware.ScopedOffice(c); officeID != nil {
		return service.OfficeChannel(*officeID)
	}
	return service.AllOffices
}

func (h *NotificationHandler) keepAliveInterval() time.Duration {
	if h.timeout <= 0 {
		return 30 * time.Second
	}
	return h.timeout
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	notifications, err := h.service.List(withRequestContext(c), dto.NotificationListRequest{
		OfficeID:   middleware.ScopedOffice(c),
		UnreadOnly: c.QueryBool("unread", false),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return respondError(c, h.logger, err, "failed to list notifications")
	}

	return utils.SendSuccess(c, "notifications", notifications)
}

func (h *NotificationHandler) stream(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ctx, cancel := context.WithCancel(withRequestContext(c))
	channel := subscriptionChannel(c)
	stream, cleanup := h.service.Subscribe(channel)
	clients := observability.RealtimeClients().WithLabelValues("sse")
	clients.Inc()
	interval := h.keepAliveInterval()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			cleanup()
			cancel()
			clients.Dec()
		}()

		ticker := time.NewTicker(interval / 2)
		defer ticker.Stop()

		for {
			select {
			case notification, ok := <-stream:
				if !ok {
					return
				}
				if err := writeNotificationEvent(w, notification); err != nil {
					h.logger.Debug().Err(err).Str("channel", channel).Msg("failed to write notification event")
					return
				}
			case <-ticker.C:
				if err := writeKeepAlive(w); err != nil {
					h.logger.Debug().Err(err).Str("channel", channel).Msg("failed to write notification keepalive")
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})

	return nil
}

func (h *NotificationHandler) handleConnection(conn *websocket.Conn) {
	channel, _ := conn.Locals(channelLocal).(string)
	if channel == "" {
		channel = service.AllOffices
	}
	baseCtx, _ := conn.Locals("request_ctx").(context.Context)
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	stream, cleanup := h.service.Subscribe(channel)
	defer cleanup()

	clients := observability.RealtimeClients().WithLabelValues("websocket")
	clients.Inc()
	defer clients.Dec()

	h.logger.Info().Str("channel", channel).Msg("notification websocket connected")
	defer h.logger.Info().Str("channel", channel).Msg("notification websocket disconnected")

	// Clients only listen; reading detects the close frame.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.keepAliveInterval() / 2)
	defer ticker.Stop()

	for {
		select {
		case notification, ok := <-stream:
			if !ok {
				return
			}
			if err := conn.WriteJSON(notification); err != nil {
				h.logger.Debug().Err(err).Msg("failed to write notification frame")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	notification, err := h.service.MarkRead(withRequestContext(c), id, middleware.ScopedOffice(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update notification")
	}

	return utils.SendSuccess(c, "notification updated", notification)
}

func (h *NotificationHandler) markAllRead(c *fiber.Ctx) error {
	updated, err := h.service.MarkAllRead(withRequestContext(c), middleware.ScopedOffice(c))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update notifications")
	}

	return utils.SendSuccess(c, "notifications updated", fiber.Map{"updated": updated})
}

func writeNotificationEvent(w *bufio.Writer, notification interface{}) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: notification\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

func writeKeepAlive(w *bufio.Writer) error {
	if _, err := fmt.Fprintf(w, ": keep-alive %s\n\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return w.Flush()
}
