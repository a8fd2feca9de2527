package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Service stores school documents on Cloudinary.
type Service struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New constructs a Cloudinary service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		client: cld,
		folder: cfg.Folder,
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload sends the document into the sub folder of the configured root and returns its secure URL.
func (s *Service) Upload(ctx context.Context, folder, name string, reader io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:       joinFolder(s.folder, folder),
		PublicID:     buildPublicID(name),
		ResourceType: "auto",
	}

	result, err := s.client.Upload.Upload(ctx, reader, params)
	if err != nil {
		return "", fmt.Errorf("upload document: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("upload document: %s", result.Error.Message)
	}

	s.logger.Info().
		Str("public_id", result.PublicID).
		Str("folder", params.Folder).
		Int("bytes", result.Bytes).
		Msg("document uploaded")

	return result.SecureURL, nil
}

func joinFolder(root, sub string) string {
	root = strings.Trim(root, "/")
	sub = strings.Trim(sub, "/")
	switch {
	case root == "":
		return sub
	case sub == "":
		return root
	default:
		return root + "/" + sub
	}
}

func buildPublicID(name string) string {
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '-'
	}, base)

	base = strings.Trim(base, "-")
	if base == "" {
		base = "document"
	}

	return fmt.Sprintf("%s-%d", base, time.Now().Unix())
}
