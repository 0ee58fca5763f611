package utils

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"lms/models"

	"github.com/google/uuid"
)

// UploadURLPrefix is where the upload directory is served from.
const UploadURLPrefix = "/uploads/"

var (
	ErrFileType     = errors.New("file type not allowed")
	ErrFileTooLarge = errors.New("file too large")
)

var allowedExtensions = map[string]string{
	".mp4":  models.FileTypeVideo,
	".webm": models.FileTypeVideo,
	".mov":  models.FileTypeVideo,
	".pdf":  models.FileTypePDF,
	".jpg":  models.FileTypeImage,
	".jpeg": models.FileTypeImage,
	".png":  models.FileTypeImage,
	".gif":  models.FileTypeImage,
	".ppt":  models.FileTypePPT,
	".pptx": models.FileTypePPT,
	".doc":  models.FileTypeDoc,
	".docx": models.FileTypeDoc,
}

// IsAllowedExtension reports whether the file name carries a whitelisted extension.
func IsAllowedExtension(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ClassifyFileType maps a file name to video/pdf/image/ppt/doc by extension alone.
func ClassifyFileType(name string) string {
	if t, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return models.FileTypeDoc
}

// CheckUpload validates one multipart file against the whitelist and size ceiling.
func CheckUpload(file *multipart.FileHeader, maxBytes int64) error {
	if !IsAllowedExtension(file.Filename) {
		return fmt.Errorf("%w: %s", ErrFileType, file.Filename)
	}
	if maxBytes > 0 && file.Size > maxBytes {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, file.Filename)
	}
	return nil
}

// SaveUploadedFile streams an upload into destDir under a generated name and
// returns the public path ("/uploads/<name>").
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	newFilename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return "", err
	}

	return GetFileURL(newFilename), nil
}

func GetFileURL(fileName string) string {
	if fileName == "" {
		return ""
	}
	return UploadURLPrefix + fileName
}

// NormalizeFilePath turns any persisted form of a stored file reference
// (absolute URL, "/uploads/x", bare "x") into "/uploads/x".
func NormalizeFilePath(stored string) string {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return ""
	}
	p := stored
	if u, err := url.Parse(stored); err == nil && u.Scheme != "" {
		p = u.Path
	}
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return GetFileURL(base)
}

// LocalPath resolves a stored reference to its location inside destDir.
func LocalPath(stored, destDir string) string {
	normalized := NormalizeFilePath(stored)
	if normalized == "" {
		return ""
	}
	return filepath.Join(destDir, strings.TrimPrefix(normalized, UploadURLPrefix))
}

// DeleteStoredFile removes the file behind a stored reference. A file that is
// already gone is not an error.
func DeleteStoredFile(stored, destDir string) error {
	fullPath := LocalPath(stored, destDir)
	if fullPath == "" {
		return nil
	}
	if _, err := os.Stat(fullPath); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	log.Printf("[FILESTORE] Deleted file from disk: %s", filepath.Base(fullPath))
	return nil
}

// DeleteStoredFiles removes every file best-effort; failures are logged and skipped.
func DeleteStoredFiles(stored []string, destDir string) {
	for _, s := range stored {
		if err := DeleteStoredFile(s, destDir); err != nil {
			log.Printf("[FILESTORE] Error deleting file %s: %v", s, err)
		}
	}
}
