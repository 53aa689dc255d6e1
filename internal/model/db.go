package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&TermMaterial{},
		&TermPage{},
		&Medium{},
		&Source{},
		&CampaignProject{},
		&Content{},
		&Link{},
	)
}
