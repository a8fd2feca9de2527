package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

var (
	pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	pdfHeader = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
)

type storageStub struct {
	calls    int
	folder   string
	uploaded bytes.Buffer
}

func (s *storageStub) Upload(_ context.Context, folder, name string, reader io.Reader) (string, error) {
	s.calls++
	s.folder = folder
	s.uploaded.Reset()
	if _, err := s.uploaded.ReadFrom(reader); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + folder + "/" + name, nil
}

type uploadRepoStub struct {
	records []models.UploadRecord
}

func (u *uploadRepoStub) Create(_ context.Context, record *models.UploadRecord) error {
	record.ID = uint(len(u.records) + 1)
	u.records = append(u.records, *record)
	return nil
}

func (u *uploadRepoStub) FindByChecksum(_ context.Context, checksum, purpose string) (models.UploadRecord, error) {
	for _, record := range u.records {
		if record.Checksum == checksum && record.Purpose == purpose {
			return record, nil
		}
	}
	return models.UploadRecord{}, gorm.ErrRecordNotFound
}

func TestUploadServiceRejectsSize(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &uploadRepoStub{}, 1, testLogger())

	file := buildFileHeader(t, "invoice.pdf", bytes.Repeat([]byte("a"), 2*1024*1024))

	_, err := svc.Upload(context.Background(), file, UploadPurposeInvoice, nil)
	require.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestUploadServiceRejectsPlainText(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &uploadRepoStub{}, 5, testLogger())

	file := buildFileHeader(t, "invoice.pdf", []byte("plain text pretending to be a pdf"))
	_, err := svc.Upload(context.Background(), file, UploadPurposeInvoice, nil)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadServiceRejectsPDFAsPicture(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &uploadRepoStub{}, 5, testLogger())

	file := buildFileHeader(t, "avatar.pdf", pdfHeader)
	_, err := svc.Upload(context.Background(), file, UploadPurposePicture, nil)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadServiceRejectsUnknownPurpose(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &uploadRepoStub{}, 5, testLogger())

	file := buildFileHeader(t, "image.png", pngHeader)
	_, err := svc.Upload(context.Background(), file, "contract", nil)
	require.ErrorIs(t, err, ErrUploadPurposeInvalid)
}

func TestUploadServiceStoresDiploma(t *testing.T) {
	storage := &storageStub{}
	repo := &uploadRepoStub{}
	svc := NewUploadService(storage, repo, 5, testLogger())
	userID := uint(4)

	file := buildFileHeader(t, "Trainer Diploma.PDF", pdfHeader)
	resp, err := svc.Upload(context.Background(), file, UploadPurposeDiploma, &userID)
	require.NoError(t, err)

	require.Equal(t, "diploma", storage.folder)
	require.Equal(t, "trainer-diploma.pdf", resp.FileName)
	require.Equal(t, "application/pdf", resp.MimeType)
	require.Equal(t, "diploma", resp.Purpose)
	require.Len(t, repo.records, 1)
	require.Equal(t, &userID, repo.records[0].UserID)
}

func TestUploadServiceDeduplicatesByChecksum(t *testing.T) {
	storage := &storageStub{}
	repo := &uploadRepoStub{}
	svc := NewUploadService(storage, repo, 5, testLogger())

	first, err := svc.Upload(context.Background(), buildFileHeader(t, "a.png", pngHeader), UploadPurposePicture, nil)
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), buildFileHeader(t, "b.png", pngHeader), UploadPurposePicture, nil)
	require.NoError(t, err)

	require.Equal(t, 1, storage.calls)
	require.Equal(t, first.URL, second.URL)
	require.Len(t, repo.records, 1)
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
