package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/platform/storage"
)

var (
	ErrInvalidFormat = errors.New("unknown export format")
	ErrShareDisabled = errors.New("sharing requires object storage to be configured")
)

// ExportService renders a session's diagram to svg, dot or json, and
// optionally uploads the artifact for sharing. Storage may be nil, only
// Share needs it.
type ExportService struct {
	sessions    *SessionService
	storage     *storage.Service
	shareExpiry time.Duration
}

func NewExportService(sessions *SessionService, storageService *storage.Service, shareExpiry time.Duration) *ExportService {
	return &ExportService{
		sessions:    sessions,
		storage:     storageService,
		shareExpiry: shareExpiry,
	}
}

// Export returns the rendered diagram and its content type. An empty format
// defaults to svg.
func (s *ExportService) Export(ctx context.Context, sessionID, format string) ([]byte, string, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if session.Diagram == nil {
		return nil, "", ErrNoDiagram
	}

	switch format {
	case "svg", "":
		return RenderSVG(session.Diagram), "image/svg+xml", nil
	case "dot":
		dot, err := RenderDOT(session.Diagram)
		if err != nil {
			return nil, "", fmt.Errorf("failed to render DOT: %w", err)
		}
		return []byte(dot), "text/vnd.graphviz", nil
	case "json":
		data, err := json.MarshalIndent(session.Diagram, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal diagram: %w", err)
		}
		return data, "application/json", nil
	default:
		return nil, "", ErrInvalidFormat
	}
}

// Share uploads the rendered export and returns a presigned download URL.
func (s *ExportService) Share(ctx context.Context, sessionID, format string) (*models.ShareResp, error) {
	if s.storage == nil {
		return nil, ErrShareDisabled
	}
	if format == "" {
		format = "svg"
	}

	data, contentType, err := s.Export(ctx, sessionID, format)
	if err != nil {
		return nil, err
	}

	fileKey, err := s.storage.UploadExport(ctx, sessionID, format, contentType, data)
	if err != nil {
		return nil, err
	}

	expires := time.Now().Add(s.shareExpiry)
	url, err := s.storage.GeneratePresignedGetDownload(fileKey, expires)
	if err != nil {
		return nil, err
	}

	return &models.ShareResp{
		URL:     url,
		FileKey: fileKey,
		Format:  format,
		Expires: expires,
	}, nil
}
