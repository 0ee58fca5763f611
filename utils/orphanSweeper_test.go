package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOrphanFiles(t *testing.T) {
	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	require.NoError(t, os.MkdirAll(filepath.Join(uploads, "nested"), 0o755))

	db, err := database.Open(&config.Config{DBDriver: "sqlite", DBName: filepath.Join(dir, "sweep.db")})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	course := models.Course{Title: "c", ImageURL: "http://localhost:5000/uploads/cover.png"}
	require.NoError(t, db.Create(&course).Error)
	lesson := models.Lesson{CourseID: course.ID, Title: "l"}
	require.NoError(t, db.Create(&lesson).Error)
	require.NoError(t, db.Create(&models.LessonFile{LessonID: lesson.ID, FilePath: "/uploads/kept.pdf"}).Error)

	old := time.Now().Add(-2 * time.Hour)
	for _, name := range []string{"kept.pdf", "cover.png", "orphan.mp4", "fresh.pdf"} {
		path := filepath.Join(uploads, name)
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
		if name != "fresh.pdf" {
			require.NoError(t, os.Chtimes(path, old, old))
		}
	}

	removed, err := SweepOrphanFiles(db, uploads, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	for name, exists := range map[string]bool{"kept.pdf": true, "cover.png": true, "fresh.pdf": true, "orphan.mp4": false, "nested": true} {
		_, err := os.Stat(filepath.Join(uploads, name))
		assert.Equal(t, exists, err == nil, name)
	}

	removed, err = SweepOrphanFiles(db, filepath.Join(dir, "missing"), time.Hour)
	assert.NoError(t, err)
	assert.Zero(t, removed)
}

func TestInitializeOrphanSweeper(t *testing.T) {
	assert.Nil(t, InitializeOrphanSweeper(&config.Config{OrphanSweepCron: ""}))
	assert.Nil(t, InitializeOrphanSweeper(&config.Config{OrphanSweepCron: "not a schedule"}))

	c := InitializeOrphanSweeper(&config.Config{OrphanSweepCron: "@every 1h", UploadDir: t.TempDir()})
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}
