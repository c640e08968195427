package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every relational table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Follow{},
		&Post{},
		&Comment{},
		&Like{},
		&Notification{},
		&Author{},
		&Book{},
		&Library{},
		&Librarian{},
	)
}
