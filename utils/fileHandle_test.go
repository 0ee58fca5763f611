package utils

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyFileType(t *testing.T) {
	cases := map[string]string{
		"a.mp4":  models.FileTypeVideo,
		"a.WEBM": models.FileTypeVideo,
		"a.mov":  models.FileTypeVideo,
		"a.pdf":  models.FileTypePDF,
		"a.JPG":  models.FileTypeImage,
		"a.gif":  models.FileTypeImage,
		"a.pptx": models.FileTypePPT,
		"a.docx": models.FileTypeDoc,
		"a.txt":  models.FileTypeDoc,
		"no-ext": models.FileTypeDoc,
	}
	for name, want := range cases {
		assert.Equal(t, want, ClassifyFileType(name), name)
	}
}

func TestCheckUpload(t *testing.T) {
	assert.NoError(t, CheckUpload(&multipart.FileHeader{Filename: "ok.PDF", Size: 10}, 100))
	assert.True(t, errors.Is(CheckUpload(&multipart.FileHeader{Filename: "bad.exe", Size: 10}, 100), ErrFileType))
	assert.True(t, errors.Is(CheckUpload(&multipart.FileHeader{Filename: "big.mp4", Size: 101}, 100), ErrFileTooLarge))
	assert.NoError(t, CheckUpload(&multipart.FileHeader{Filename: "big.mp4", Size: 101}, 0))
}

func TestNormalizeFilePath(t *testing.T) {
	cases := map[string]string{
		"/uploads/a.pdf":                      "/uploads/a.pdf",
		"a.pdf":                               "/uploads/a.pdf",
		"http://localhost:5000/uploads/a.pdf": "/uploads/a.pdf",
		"https://cdn.example.com/x/uploads/b.png": "/uploads/b.png",
		"  ": "",
		"":   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeFilePath(in), in)
	}
}

// fileHeader builds a real multipart.FileHeader carrying content.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("files", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["files"][0]
}

func TestSaveAndDeleteStoredFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	public, err := SaveUploadedFile(fileHeader(t, "Lecture.MP4", []byte("frames")), dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(public, UploadURLPrefix))
	assert.True(t, strings.HasSuffix(public, ".mp4"))

	stored, err := os.ReadFile(LocalPath(public, dir))
	require.NoError(t, err)
	assert.Equal(t, "frames", string(stored))

	other, err := SaveUploadedFile(fileHeader(t, "Lecture.MP4", []byte("frames")), dir)
	require.NoError(t, err)
	assert.NotEqual(t, public, other)

	require.NoError(t, DeleteStoredFile(public, dir))
	_, err = os.Stat(LocalPath(public, dir))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// already gone
	assert.NoError(t, DeleteStoredFile(public, dir))
	assert.NoError(t, DeleteStoredFile("", dir))

	DeleteStoredFiles([]string{other, "/uploads/missing.pdf"}, dir)
	_, err = os.Stat(LocalPath(other, dir))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLocalPathStaysInUploadDir(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, "passwd"), LocalPath("/uploads/../../etc/passwd", dir))
}
