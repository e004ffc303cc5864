package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store bundles the per-entity repositories over one database handle.
type Store struct {
	db *gorm.DB

	Users       UserRepo
	Stats       StatsRepo
	Courses     CourseRepo
	Lessons     LessonRepo
	Enrollments EnrollmentRepo
	Progress    ProgressRepo
	Games       GameRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Users:       NewUserRepo(db),
		Stats:       NewStatsRepo(db),
		Courses:     NewCourseRepo(db),
		Lessons:     NewLessonRepo(db),
		Enrollments: NewEnrollmentRepo(db),
		Progress:    NewProgressRepo(db),
		Games:       NewGameRepo(db),
	}
}

// Transaction runs fn in a database transaction. Repositories called with
// the tx handle participate in it; a returned error rolls it back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func conn(ctx context.Context, db, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = db
	}
	return tx.WithContext(ctx)
}

var forUpdate = clause.Locking{Strength: "UPDATE"}

// lessonSequence orders lessons by rank, then id, so equal ranks stay deterministic.
func lessonSequence(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}
