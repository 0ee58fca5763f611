package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func logSweeper(message string) {
	log.Printf("[ORPHAN-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// referencedFiles returns the base names of every upload some row points at.
func referencedFiles(db *gorm.DB) (map[string]struct{}, error) {
	var paths []string
	if err := db.Model(&models.LessonFile{}).Pluck("file_path", &paths).Error; err != nil {
		return nil, err
	}
	var images []string
	if err := db.Model(&models.Course{}).Where("image_url <> ''").Pluck("image_url", &images).Error; err != nil {
		return nil, err
	}

	refs := make(map[string]struct{}, len(paths)+len(images))
	for _, p := range append(paths, images...) {
		if n := NormalizeFilePath(p); n != "" {
			refs[strings.TrimPrefix(n, UploadURLPrefix)] = struct{}{}
		}
	}
	return refs, nil
}

// SweepOrphanFiles deletes files in dir that no lesson file or course image
// references and that are older than grace. Younger files may belong to an
// upload whose rows are not committed yet.
func SweepOrphanFiles(db *gorm.DB, dir string, grace time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	refs, err := referencedFiles(db)
	if err != nil {
		return 0, fmt.Errorf("load references: %w", err)
	}

	cutoff := time.Now().Add(-grace)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := refs[entry.Name()]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			logSweeper("Error removing " + entry.Name() + ": " + err.Error())
			continue
		}
		removed++
	}
	return removed, nil
}

// InitializeOrphanSweeper schedules SweepOrphanFiles. It returns nil when the
// schedule is empty.
func InitializeOrphanSweeper(cfg *config.Config) *cron.Cron {
	if cfg.OrphanSweepCron == "" {
		logSweeper("Disabled (ORPHAN_SWEEP_CRON is empty)")
		return nil
	}

	grace := time.Duration(cfg.OrphanGraceMinutes) * time.Minute
	c := cron.New()
	_, err := c.AddFunc(cfg.OrphanSweepCron, func() {
		removed, err := SweepOrphanFiles(database.Database.Db, cfg.UploadDir, grace)
		if err != nil {
			logSweeper("Sweep failed: " + err.Error())
			return
		}
		if removed > 0 {
			logSweeper(fmt.Sprintf("Removed %d orphaned file(s)", removed))
		}
	})
	if err != nil {
		logSweeper("Invalid schedule " + cfg.OrphanSweepCron + ": " + err.Error())
		return nil
	}

	c.Start()
	logSweeper("Started with schedule " + cfg.OrphanSweepCron)
	return c
}
