package models

import "gorm.io/gorm"

// All lists every table of the schema in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserStats{},
		&Course{},
		&Lesson{},
		&Enrollment{},
		&Progress{},
		&GameScore{},
		&GameQuestion{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
