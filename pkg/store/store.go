// Package store persists named profile sources in SQLite.
//
// Only the profile text is stored. Compiled runtimes depend on the tag
// dictionary of the running process and are rebuilt on load.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when no live profile has the requested name.
var ErrNotFound = errors.New("store: profile not found")

// Store is a profile store backed by a SQLite database.
//
// Safe for concurrent use by multiple goroutines.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and migrates its
// schema. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&ProfileRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Put stores source under name, replacing the live profile of that name.
func (s *Store) Put(ctx context.Context, name, source string) error {
	now := time.Now().Unix()
	rec := ProfileRecord{
		Name:      name,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "deleted"}},
		DoUpdates: clause.AssignmentColumns([]string{"source", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("store: put %q: %w", name, err)
	}
	return nil
}

// Get returns the live profile called name.
func (s *Store) Get(ctx context.Context, name string) (*ProfileRecord, error) {
	var rec ProfileRecord
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %q: %w", name, err)
	}
	return &rec, nil
}

// Source returns the text of the live profile called name.
func (s *Store) Source(ctx context.Context, name string) (string, error) {
	rec, err := s.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return rec.Source, nil
}

// List returns the names of all live profiles in alphabetical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&ProfileRecord{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return names, nil
}

// Delete soft-deletes the profile called name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&ProfileRecord{})
	if res.Error != nil {
		return fmt.Errorf("store: delete %q: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
