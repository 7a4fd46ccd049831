package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/quizcraft/quizcraft-backend/internal/config"
	"github.com/quizcraft/quizcraft-backend/internal/textextract"
)

var (
	// ErrUnsupportedFileType means the uploaded MIME type is not accepted.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge means the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var documentExtensions = map[string]string{
	textextract.MimePDF:  ".pdf",
	textextract.MimeDOCX: ".docx",
	textextract.MimeTXT:  ".txt",
}

// UploadService stores uploaded files on local disk. Documents land in a
// tmp/ subdirectory and are deleted once text extraction finishes; avatars
// are kept under avatars/ and served statically.
type UploadService struct {
	cfg *config.Config
}

// NewUploadService creates the upload directories if missing.
func NewUploadService(cfg *config.Config) (*UploadService, error) {
	for _, dir := range []string{
		filepath.Join(cfg.UploadDir, "tmp"),
		filepath.Join(cfg.UploadDir, "avatars"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return &UploadService{cfg: cfg}, nil
}

// SaveDocument writes an uploaded document to the temp directory and
// returns its path together with the detected MIME type. The caller owns
// the file and must remove it when done.
func (s *UploadService) SaveDocument(header *multipart.FileHeader) (path, mimeType string, err error) {
	mimeType = header.Header.Get("Content-Type")
	ext, ok := documentExtensions[mimeType]
	if !ok {
		return "", "", ErrUnsupportedFileType
	}
	if header.Size > s.cfg.MaxUploadBytes {
		return "", "", ErrFileTooLarge
	}

	path = filepath.Join(s.cfg.UploadDir, "tmp", uuid.New().String()+ext)
	if err := s.writeFile(header, path); err != nil {
		return "", "", err
	}
	return path, mimeType, nil
}

// SaveAvatar stores a profile picture and returns its public URL path.
func (s *UploadService) SaveAvatar(header *multipart.FileHeader) (string, error) {
	ext, ok := avatarExtensions[header.Header.Get("Content-Type")]
	if !ok {
		return "", ErrUnsupportedFileType
	}
	if header.Size > s.cfg.MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	name := uuid.New().String() + ext
	if err := s.writeFile(header, filepath.Join(s.cfg.UploadDir, "avatars", name)); err != nil {
		return "", err
	}
	return "/uploads/avatars/" + name, nil
}

// Remove deletes a previously saved file. Missing files are not an error.
func (s *UploadService) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveAvatar deletes an avatar given its public URL path.
func (s *UploadService) RemoveAvatar(urlPath string) error {
	name := filepath.Base(urlPath)
	return s.Remove(filepath.Join(s.cfg.UploadDir, "avatars", name))
}

func (s *UploadService) writeFile(header *multipart.FileHeader, path string) error {
	src, err := header.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
