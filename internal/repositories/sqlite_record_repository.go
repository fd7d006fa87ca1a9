package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "taskboard.com/taskboard/internal/models"
)

type SQLiteRecordRepository struct {
	db *gorm.DB
}

func NewSQLiteRecordRepository(db *gorm.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{db: db}
}

func (r *SQLiteRecordRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var record model.Record
	err := r.db.WithContext(ctx).First(&record, "record_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record.Value, nil
}

// Set upserts the record and bumps its version. Writers are not checked
// against the version they read; the last write wins.
func (r *SQLiteRecordRepository) Set(ctx context.Context, key string, value []byte) error {
	record := &model.Record{
		Key:       key,
		Value:     value,
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      record.Value,
			"updated_at": record.UpdatedAt,
			"version":    gorm.Expr("version + 1"),
		}),
	}).Create(record).Error
}

func (r *SQLiteRecordRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&model.Record{}, "record_key = ?", key).Error
}

// Version returns how many times key has been written, or 0 if it is absent.
func (r *SQLiteRecordRepository) Version(ctx context.Context, key string) (uint, error) {
	var record model.Record
	err := r.db.WithContext(ctx).Select("version").First(&record, "record_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.Version, nil
}
