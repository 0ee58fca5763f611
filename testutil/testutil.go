// Package testutil builds a fully wired application on a throwaway sqlite
// store for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/routers"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const RootPassword = "root-secret"

// Env is one isolated application instance.
type Env struct {
	App    *fiber.App
	DB     *gorm.DB
	Config *config.Config
	Mailer *utils.CaptureMailer
	Admin  models.User
}

// Setup points the package globals at a fresh store, upload dir and capturing mailer.
func Setup(t *testing.T) *Env {
	t.Helper()

	dir := t.TempDir()
	cfg := config.FromEnv()
	cfg.DBDriver = "sqlite"
	cfg.DBName = filepath.Join(dir, "test.db")
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.JWTKey = "test-secret"
	cfg.SaltRound = bcrypt.MinCost
	cfg.RootAdminEmail = "root@lms.test"
	cfg.RootAdminPassword = RootPassword
	cfg.ProtectRootAdmin = false
	cfg.ClientURL = "http://client.test"
	config.AppConfig = cfg

	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedRootAdmin(db, cfg))
	database.Database = database.DbInstance{Db: db}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	mailer := &utils.CaptureMailer{}
	utils.AppMailer = mailer

	var admin models.User
	require.NoError(t, db.Where("email = ?", cfg.RootAdminEmail).First(&admin).Error)

	return &Env{App: routers.NewApp(cfg), DB: db, Config: cfg, Mailer: mailer, Admin: admin}
}

// CreateUser inserts an account directly, bypassing registration.
func (e *Env) CreateUser(t *testing.T, name, email, role string, verified bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	status := models.StatusUnverified
	if verified {
		status = models.StatusVerified
	}
	user := models.User{Name: name, Email: email, Password: string(hash), Role: role, VerificationStatus: status}
	require.NoError(t, e.DB.Create(&user).Error)
	return user
}

// Token issues a session token for user.
func (e *Env) Token(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

// AdminToken is a session token for the seeded root admin.
func (e *Env) AdminToken(t *testing.T) string {
	return e.Token(t, e.Admin)
}

// Response is a decoded reply.
type Response struct {
	Status int
	Body   []byte
}

// Map decodes the body as a JSON object.
func (r Response) Map(t *testing.T) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Body, &out), string(r.Body))
	return out
}

// Decode decodes the body into v.
func (r Response) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), string(r.Body))
}

// JSON sends body (nil for none) as JSON with an optional bearer token.
func (e *Env) JSON(t *testing.T, method, path string, body interface{}, token string) Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.do(t, req, token)
}

// Upload is one file part of a multipart request.
type Upload struct {
	Field   string
	Name    string
	Content []byte
}

// Multipart sends fields and files as multipart/form-data.
func (e *Env) Multipart(t *testing.T, method, path string, fields map[string]string, files []Upload, token string) Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		field := f.Field
		if field == "" {
			field = "files"
		}
		part, err := w.CreateFormFile(field, f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return e.do(t, req, token)
}

func (e *Env) do(t *testing.T, req *http.Request, token string) Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return Response{Status: resp.StatusCode, Body: body}
}

// UploadedFiles lists the names currently in the upload directory.
func (e *Env) UploadedFiles(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(e.Config.UploadDir, "*"))
	require.NoError(t, err)
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
	}
	return names
}
