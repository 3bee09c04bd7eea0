package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxDesignUploadSize caps uploaded design sources at 10MB
	MaxDesignUploadSize = 10 * 1024 * 1024
)

// allowedDesignExtensions lists the design source types we accept.
var allowedDesignExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ValidateDesignUpload checks that an uploaded design source is an
// accepted type within the size limit. The content is sniffed, not
// trusted from the extension alone.
func ValidateDesignUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxDesignUploadSize {
		return fmt.Errorf("file size exceeds maximum allowed size of 10MB")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedDesignExtensions[ext] {
		return fmt.Errorf("only PDF and image files (png, jpg, webp) are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	buffer = buffer[:n]

	if !matchesDesignMagic(ext, buffer) {
		return fmt.Errorf("file content does not match its extension")
	}

	return nil
}

func matchesDesignMagic(ext string, header []byte) bool {
	switch ext {
	case ".pdf":
		return len(header) >= 4 && string(header[0:4]) == "%PDF"
	case ".png":
		return len(header) >= 8 && string(header[0:4]) == "\x89PNG"
	case ".jpg", ".jpeg":
		return len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF
	case ".webp":
		return len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "WEBP"
	default:
		return false
	}
}

// SafeDesignFileName builds a collision-free storage filename that
// keeps the original extension.
func SafeDesignFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)
}
