package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"feedbackportal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

type SQLiteDB struct {
	Conn *gorm.DB
	Path string
}

func NewSQLiteDB(path string) *SQLiteDB {
	return &SQLiteDB{Path: path}
}

func (s *SQLiteDB) Connect(ctx context.Context) error {
	if s.Path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
			return err
		}
	}

	conn, err := gorm.Open(sqlite.Open(s.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	// One connection: SQLite serializes writers anyway, and each
	// connection to :memory: would otherwise see its own empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := conn.WithContext(ctx).Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := conn.WithContext(ctx).AutoMigrate(&models.User{}, &models.Feedback{}, &models.Response{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	s.Conn = conn
	return nil
}

func (s *SQLiteDB) Disconnect(ctx context.Context) error {
	if s.Conn == nil {
		return nil
	}
	sqlDB, err := s.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
