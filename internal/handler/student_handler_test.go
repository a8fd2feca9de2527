package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/handler"
	"github.com/noah-isme/drivedesk-api/internal/service"
)

type stubStudentService struct {
	lastList  dto.StudentListRequest
	lastActor service.ActivityActor
	list      dto.StudentListResponse
	progress  dto.ProgressResponse
	err       error
}

func (s *stubStudentService) Create(_ context.Context, payload dto.StudentCreateRequest, actor service.ActivityActor) (dto.StudentResponse, error) {
	s.lastActor = actor
	if s.err != nil {
		return dto.StudentResponse{}, s.err
	}
	return dto.StudentResponse{ID: 9, Name: payload.Name, LicenseCategory: payload.LicenseCategory}, nil
}

func (s *stubStudentService) Get(_ context.Context, id uint, actor service.ActivityActor) (dto.StudentResponse, error) {
	s.lastActor = actor
	if s.err != nil {
		return dto.StudentResponse{}, s.err
	}
	return dto.StudentResponse{ID: id}, nil
}

func (s *stubStudentService) Update(_ context.Context, id uint, _ dto.StudentUpdateRequest, actor service.ActivityActor) (dto.StudentResponse, error) {
	s.lastActor = actor
	return dto.StudentResponse{ID: id}, s.err
}

func (s *stubStudentService) List(_ context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error) {
	s.lastList = req
	return s.list, s.err
}

func (s *stubStudentService) Progress(_ context.Context, id uint, actor service.ActivityActor) (dto.ProgressResponse, error) {
	s.lastActor = actor
	if s.err != nil {
		return dto.ProgressResponse{}, s.err
	}
	progress := s.progress
	progress.StudentID = id
	return progress, nil
}

func (s *stubStudentService) Standards(context.Context, *uint) ([]dto.StandardGroupResponse, error) {
	return nil, s.err
}

func newStudentApp(svc *stubStudentService, role string, officeID uint) *fiber.App {
	app := fiber.New()
	handler.NewStudentHandler(svc, zerolog.Nop()).Register(authenticated(app, "/api/v1/students", role, officeID))
	return app
}

func TestStudentHandlerListPinsSecretaryOffice(t *testing.T) {
	svc := &stubStudentService{list: dto.StudentListResponse{
		Items:      []dto.StudentResponse{{ID: 1, Name: "Jane"}},
		Pagination: dto.NewPaginationMeta(2, 10, 11),
	}}
	app := newStudentApp(svc, "secretary", 4)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students?office_id=8&page=2&page_size=10&sort=name:asc&include_archived=true", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, svc.lastList.OfficeID)
	require.Equal(t, uint(4), *svc.lastList.OfficeID)
	require.Equal(t, 2, svc.lastList.Page)
	require.Equal(t, "name:asc", svc.lastList.Sort)
	require.True(t, svc.lastList.IncludeArchived)

	var body envelope
	decodeResponse(t, resp, &body)
	var meta dto.PaginationMeta
	require.NoError(t, json.Unmarshal(body.Meta, &meta))
	require.Equal(t, 2, meta.TotalPages)
}

func TestStudentHandlerCreateCarriesSecretaryActor(t *testing.T) {
	svc := &stubStudentService{}
	app := newStudentApp(svc, "secretary", 4)

	payload, err := json.Marshal(dto.StudentCreateRequest{Name: "Jane Doe", LicenseCategory: "B", OfficeID: 8})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/students", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NotNil(t, svc.lastActor.OfficeID)
	require.Equal(t, uint(4), *svc.lastActor.OfficeID)
	require.Equal(t, "secretary", svc.lastActor.Role)
}

func TestStudentHandlerAdminActorIsUnscoped(t *testing.T) {
	svc := &stubStudentService{}
	app := newStudentApp(svc, "admin", 0)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/students/3?office_id=2", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, svc.lastActor.OfficeID)
}

func TestStudentHandlerMapsErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: service.ErrStudentNotFound, status: fiber.StatusNotFound},
		{name: "unknown category", err: service.ErrUnknownLicenseCategory, status: fiber.StatusBadRequest},
		{name: "unexpected", err: io.ErrUnexpectedEOF, status: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newStudentApp(&stubStudentService{err: tc.err}, "admin", 0)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/students/3", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			var body envelope
			decodeResponse(t, resp, &body)
			require.False(t, body.Success)
			if tc.status == fiber.StatusInternalServerError {
				require.Equal(t, "failed to fetch student", body.Message)
			}
		})
	}
}

func TestStudentHandlerValidationErrorsListFields(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
	}
	validationErr := validator.New().Struct(form{})
	require.Error(t, validationErr)

	app := newStudentApp(&stubStudentService{err: validationErr}, "admin", 0)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/students", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body envelope
	decodeResponse(t, resp, &body)
	require.Equal(t, "required", body.Errors["name"])
}

func TestStudentHandlerRejectsInvalidIdentifier(t *testing.T) {
	app := newStudentApp(&stubStudentService{}, "admin", 0)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/students/abc/progress", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStudentProgressContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("testdata", "progress.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	svc := &stubStudentService{progress: dto.ProgressResponse{
		Percent:            55,
		CompletedLessons:   3,
		TotalLessonsTarget: service.TotalLessonsTarget,
		TheoryStatus:       "passed",
		PracticalStatus:    service.ExamNotTaken,
	}}
	app := newStudentApp(svc, "admin", 0)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/students/12/progress", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
