package models

import (
	"fmt"
	"os"
	"path/filepath"
)

// Upload is an image picked for a multipart submission. A nil *Upload means
// no image part is sent.
type Upload struct {
	Filename string
	Data     []byte
}

// UploadFromFile reads the file at path into an Upload.
func UploadFromFile(path string) (*Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, &ValidationError{Field: "image", Reason: "file is empty"}
	}
	return &Upload{Filename: filepath.Base(path), Data: data}, nil
}
