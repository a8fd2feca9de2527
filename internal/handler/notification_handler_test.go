package handler_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/handler"
	"github.com/noah-isme/drivedesk-api/internal/service"
)

type stubNotificationService struct {
	lastList    dto.NotificationListRequest
	lastOffice  *uint
	readErr     error
	subscribed  chan string
	stream      chan dto.NotificationResponse
	unsubscribe chan struct{}
}

func newStubNotificationService() *stubNotificationService {
	return &stubNotificationService{
		subscribed:  make(chan string, 1),
		stream:      make(chan dto.NotificationResponse, 1),
		unsubscribe: make(chan struct{}, 1),
	}
}

func (s *stubNotificationService) Publish(context.Context, dto.NotificationCreateRequest) (dto.NotificationResponse, error) {
	return dto.NotificationResponse{}, nil
}

func (s *stubNotificationService) List(_ context.Context, req dto.NotificationListRequest) ([]dto.NotificationResponse, error) {
	s.lastList = req
	return []dto.NotificationResponse{}, nil
}

func (s *stubNotificationService) MarkRead(_ context.Context, id uint, officeID *uint) (dto.NotificationResponse, error) {
	s.lastOffice = officeID
	if s.readErr != nil {
		return dto.NotificationResponse{}, s.readErr
	}
	return dto.NotificationResponse{ID: id, Read: true}, nil
}

func (s *stubNotificationService) MarkAllRead(_ context.Context, officeID *uint) (int64, error) {
	s.lastOffice = officeID
	return 3, nil
}

func (s *stubNotificationService) Subscribe(channel string) (<-chan dto.NotificationResponse, func()) {
	s.subscribed <- channel
	return s.stream, func() { s.unsubscribe <- struct{}{} }
}

func (s *stubNotificationService) Start(context.Context) {}

func newNotificationApp(svc *stubNotificationService, role string, officeID uint) *fiber.App {
	app := fiber.New()
	handler.NewNotificationHandler(svc, zerolog.Nop(), time.Minute).Register(authenticated(app, "/api/v1/notifications", role, officeID))
	return app
}

func TestNotificationHandlerListUsesScope(t *testing.T) {
	svc := newStubNotificationService()
	app := newNotificationApp(svc, "secretary", 5)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notifications?unread=true&limit=10", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.lastList.OfficeID)
	require.Equal(t, uint(5), *svc.lastList.OfficeID)
	require.True(t, svc.lastList.UnreadOnly)
	require.Equal(t, 10, svc.lastList.Limit)
}

func TestNotificationHandlerMarkRead(t *testing.T) {
	svc := newStubNotificationService()
	app := newNotificationApp(svc, "admin", 0)

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/7/read", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, svc.lastOffice)

	svc.readErr = service.ErrNotificationNotFound
	resp, err = app.Test(httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/7/read", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestNotificationHandlerMarkAllRead(t *testing.T) {
	svc := newStubNotificationService()
	app := newNotificationApp(svc, "secretary", 2)

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/read-all", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.lastOffice)
	require.Equal(t, uint(2), *svc.lastOffice)

	var body struct {
		Data struct {
			Updated int64 `json:"updated"`
		} `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, int64(3), body.Data.Updated)
}

func TestNotificationHandlerRequiresUpgradeForWebSocket(t *testing.T) {
	app := newNotificationApp(newStubNotificationService(), "admin", 0)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/notifications/ws", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestNotificationWebSocketStreamsOfficeChannel(t *testing.T) {
	svc := newStubNotificationService()
	app := newNotificationApp(svc, "secretary", 3)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(listener)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	url := fmt.Sprintf("ws://%s/api/v1/notifications/ws", listener.Addr().String())
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	select {
	case channel := <-svc.subscribed:
		require.Equal(t, service.OfficeChannel(3), channel)
	case <-time.After(2 * time.Second):
		t.Fatal("websocket never subscribed")
	}

	svc.stream <- dto.NotificationResponse{ID: 11, StudentID: 4, StudentName: "Jane Doe", OfficeID: 3, Type: "completion"}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var received dto.NotificationResponse
	require.NoError(t, conn.ReadJSON(&received))
	require.Equal(t, uint(11), received.ID)
	require.Equal(t, "Jane Doe", received.StudentName)

	require.NoError(t, conn.Close())
	select {
	case <-svc.unsubscribe:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription was not released")
	}
}
