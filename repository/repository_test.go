package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shifo-uz/clinicbackend/database"
	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/uploads"
)

// newTestDB opens an isolated in-memory database, migrated and ready.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

// file builds an already-stored upload descriptor for binding tests.
func file(field, name string) uploads.File {
	return uploads.File{
		Field:    field,
		MimeType: "image/jpeg",
		URL:      "/uploads/test/" + name,
		Kind:     media.KindImage,
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func uintPtr(u uint) *uint { return &u }
