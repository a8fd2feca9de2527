package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/observability"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

// Upload purposes accepted by the document endpoint.
const (
	UploadPurposeInvoice = "invoice"
	UploadPurposeDiploma = "diploma"
	UploadPurposePicture = "picture"
)

var (
	// ErrUploadMissing indicates the request carried no file.
	ErrUploadMissing = errors.New("file is required")
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the sniffed MIME type is not permitted for the purpose.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
	// ErrUploadPurposeInvalid indicates an unknown upload purpose.
	ErrUploadPurposeInvalid = errors.New("invalid upload purpose")
)

// FileStorage abstracts upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, folder, name string, reader io.Reader) (string, error)
}

// UploadService validates documents and stores them.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, purpose string, userID *uint) (dto.UploadResponse, error)
}

type uploadService struct {
	storage FileStorage
	repo    repository.UploadRepository
	logger  zerolog.Logger
	maxSize int64
	tracer  trace.Tracer
}

// NewUploadService constructs an upload service.
func NewUploadService(storage FileStorage, repo repository.UploadRepository, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &uploadService{
		storage: storage,
		repo:    repo,
		logger:  logger.With().Str("component", "upload_service").Logger(),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		tracer:  otel.Tracer("github.com/noah-isme/drivedesk-api/internal/service/upload"),
	}
}

func (s *uploadService) Upload(ctx context.Context, file *multipart.FileHeader, purpose string, userID *uint) (dto.UploadResponse, error) {
	ctx, span := s.tracer.Start(ctx, "upload.store")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	purpose = strings.ToLower(strings.TrimSpace(purpose))
	if purpose == "" {
		purpose = UploadPurposeInvoice
	}
	span.SetAttributes(
		attribute.String("upload.purpose", purpose),
		attribute.Int64("upload.max_bytes", s.maxSize),
	)

	if !validPurpose(purpose) {
		return s.reject(span, "purpose", ErrUploadPurposeInvalid)
	}
	if file == nil {
		return s.reject(span, "missing", ErrUploadMissing)
	}
	span.SetAttributes(attribute.String("upload.original_name", strings.TrimSpace(file.Filename)))

	if file.Size > s.maxSize {
		return s.reject(span, "size", ErrUploadTooLarge)
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return dto.UploadResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return dto.UploadResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		return s.reject(span, "size", ErrUploadTooLarge)
	}

	detected := mimetype.Detect(buf.Bytes())
	mimeType := detected.String()
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	span.SetAttributes(attribute.String("upload.detected_mime", mimeType))
	if !allowedForPurpose(purpose, mimeType) {
		return s.reject(span, "type", ErrUploadTypeNotAllowed)
	}

	sum := sha256.Sum256(buf.Bytes())
	checksum := hex.EncodeToString(sum[:])

	existing, err := s.repo.FindByChecksum(ctx, checksum, purpose)
	if err == nil {
		s.logger.Debug().Str("checksum", checksum).Str("purpose", purpose).Msg("reusing stored document")
		span.SetStatus(codes.Ok, "deduplicated")
		return newUploadResponse(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		span.RecordError(err)
		return dto.UploadResponse{}, fmt.Errorf("lookup upload checksum: %w", err)
	}

	name := sanitizeFileName(file.Filename, detected.Extension())
	url, err := s.storage.Upload(ctx, purpose, name, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.UploadResponse{}, fmt.Errorf("store document: %w", err)
	}

	record := models.UploadRecord{
		UserID:    userID,
		Purpose:   purpose,
		FileName:  name,
		URL:       url,
		MimeType:  mimeType,
		SizeBytes: int64(buf.Len()),
		Checksum:  checksum,
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.UploadResponse{}, fmt.Errorf("save upload record: %w", err)
	}

	observability.UploadRequests().WithLabelValues(purpose).Inc()
	span.SetStatus(codes.Ok, "stored")

	return newUploadResponse(record), nil
}

func (s *uploadService) reject(span trace.Span, reason string, err error) (dto.UploadResponse, error) {
	observability.UploadRejected().WithLabelValues(reason).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	return dto.UploadResponse{}, err
}

func newUploadResponse(record models.UploadRecord) dto.UploadResponse {
	return dto.UploadResponse{
		URL:       record.URL,
		SizeBytes: record.SizeBytes,
		MimeType:  record.MimeType,
		Checksum:  record.Checksum,
		FileName:  record.FileName,
		Purpose:   record.Purpose,
	}
}

func validPurpose(purpose string) bool {
	switch purpose {
	case UploadPurposeInvoice, UploadPurposeDiploma, UploadPurposePicture:
		return true
	default:
		return false
	}
}

// allowedForPurpose accepts images everywhere and PDF for documents only.
func allowedForPurpose(purpose, mimeType string) bool {
	if strings.HasPrefix(mimeType, "image/") {
		return mimeType != "image/svg+xml"
	}
	return mimeType == "application/pdf" && purpose != UploadPurposePicture
}

func sanitizeFileName(name, detectedExt string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("document-%d", time.Now().Unix())
	}

	ext := strings.ToLower(detectedExt)
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(name))
	}
	if ext == "" {
		ext = ".bin"
	}
	return base + ext
}
