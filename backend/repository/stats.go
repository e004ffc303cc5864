package repository

import (
	"context"

	"englishhub/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepo interface {
	// Ensure returns the user's stats row, creating a zeroed one if absent.
	Ensure(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserStats, error)
	// EnsureForUpdate is Ensure plus a row lock held until tx ends.
	EnsureForUpdate(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserStats, error)
	Save(ctx context.Context, tx *gorm.DB, stats *models.UserStats) error
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) StatsRepo {
	return &statsRepo{db: db}
}

func (r *statsRepo) Ensure(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserStats, error) {
	return r.ensure(ctx, tx, userID, false)
}

func (r *statsRepo) EnsureForUpdate(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserStats, error) {
	return r.ensure(ctx, tx, userID, true)
}

func (r *statsRepo) ensure(ctx context.Context, tx *gorm.DB, userID uint, lock bool) (*models.UserStats, error) {
	db := conn(ctx, r.db, tx)

	fresh := models.UserStats{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	q := db
	if lock {
		q = q.Clauses(forUpdate)
	}
	var stats models.UserStats
	if err := q.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepo) Save(ctx context.Context, tx *gorm.DB, stats *models.UserStats) error {
	return conn(ctx, r.db, tx).Save(stats).Error
}
