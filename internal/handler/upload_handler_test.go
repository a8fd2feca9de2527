package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/handler"
	"github.com/noah-isme/drivedesk-api/internal/service"
)

type mockUploadService struct {
	lastUserID  *uint
	lastPurpose string
	response    dto.UploadResponse
	err         error
}

func (m *mockUploadService) Upload(_ context.Context, file *multipart.FileHeader, purpose string, userID *uint) (dto.UploadResponse, error) {
	if file != nil {
		if _, err := file.Open(); err != nil {
			return dto.UploadResponse{}, err
		}
	}
	m.lastUserID = userID
	m.lastPurpose = purpose
	if m.err != nil {
		return dto.UploadResponse{}, m.err
	}
	return m.response, nil
}

func uploadRequest(t *testing.T, purpose string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "diploma.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("purpose", purpose))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newUploadApp(svc *mockUploadService) *fiber.App {
	app := fiber.New()
	handler.NewUploadHandler(svc, zerolog.Nop()).Register(authenticated(app, "/api/v1/uploads", "admin", 0))
	return app
}

func TestUploadHandlerSuccess(t *testing.T) {
	svc := &mockUploadService{response: dto.UploadResponse{URL: "https://cdn.example.com/diploma.pdf", MimeType: "application/pdf", FileName: "diploma.pdf", Purpose: "diploma"}}
	app := newUploadApp(svc)

	resp, err := app.Test(uploadRequest(t, "diploma"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NotNil(t, svc.lastUserID)
	require.Equal(t, uint(1), *svc.lastUserID)
	require.Equal(t, "diploma", svc.lastPurpose)

	var body struct {
		Data dto.UploadResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, "https://cdn.example.com/diploma.pdf", body.Data.URL)
}

func TestUploadHandlerMapsErrors(t *testing.T) {
	app := newUploadApp(&mockUploadService{err: service.ErrUploadTooLarge})
	resp, err := app.Test(uploadRequest(t, "invoice"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	app = newUploadApp(&mockUploadService{err: service.ErrUploadPurposeInvalid})
	resp, err = app.Test(uploadRequest(t, "selfie"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadHandlerRequiresFile(t *testing.T) {
	app := newUploadApp(&mockUploadService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
