package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/godocompany/classroom-api/models"
	"github.com/google/uuid"
)

// FileStorageService stores uploaded files on disk and hands back the
// metadata that file messages carry. The upload directory is served
// statically under /public/upload by the HTTP server.
type FileStorageService struct {
	UploadDir     string
	PublicBaseURL string
}

// SaveUpload writes a multipart upload under a unique name and returns
// the file payload for the message that references it.
func (s *FileStorageService) SaveUpload(file *multipart.FileHeader) (*models.MessageFile, error) {

	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return nil, err
	}

	// Prefix with a uuid so concurrent uploads of the same name never
	// collide
	storedName := fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(file.Filename))

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.UploadDir, storedName))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	return &models.MessageFile{
		URL:  fmt.Sprintf("%s/public/upload/%s", s.PublicBaseURL, storedName),
		Name: file.Filename,
		Mime: file.Header.Get("Content-Type"),
		Size: file.Size,
	}, nil

}
