package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"insurance-portal/internal/model"
)

// DocumentService stores admin-uploaded knowledge-base PDFs and notifies the
// AI collaborator so it can index them. Notification is best effort: a stored
// document is a success even if the assistant is down.
type DocumentService struct {
	uploadDir string
	aiBaseURL string
	client    *http.Client
}

func NewDocumentService(uploadDir string, aiBaseURL string, timeout time.Duration) (*DocumentService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &DocumentService{
		uploadDir: uploadDir,
		aiBaseURL: strings.TrimRight(aiBaseURL, "/"),
		client:    &http.Client{Timeout: timeout},
	}, nil
}

func (s *DocumentService) Store(ctx context.Context, originalName string, description string, r io.Reader) (model.DocumentInfo, error) {
	originalName = strings.TrimSpace(originalName)
	if !strings.EqualFold(filepath.Ext(originalName), ".pdf") {
		return model.DocumentInfo{}, model.ErrInvalidInput
	}

	storedName := uuid.NewString() + ".pdf"
	target := filepath.Join(s.uploadDir, storedName)

	f, err := os.Create(target)
	if err != nil {
		return model.DocumentInfo{}, fmt.Errorf("create document file: %w", err)
	}

	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		return model.DocumentInfo{}, fmt.Errorf("write document file: %w", err)
	}

	info := model.DocumentInfo{
		OriginalName: filepath.Base(originalName),
		StoredName:   storedName,
		Size:         size,
		Description:  description,
		UploadedAt:   time.Now().UTC(),
	}

	if err := s.notifyAI(ctx, info); err != nil {
		slog.Warn("ai service upload notification failed", "document", storedName, "error", err)
	}

	return info, nil
}

func (s *DocumentService) notifyAI(ctx context.Context, info model.DocumentInfo) error {
	payload, err := json.Marshal(map[string]any{"file": info})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.aiBaseURL+"/upload-document", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ai service returned status %d", resp.StatusCode)
	}

	return nil
}
