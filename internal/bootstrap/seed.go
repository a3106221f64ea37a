package bootstrap

import (
	"context"
	"log"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Report{},
		&model.Announcement{},
		&model.Announcer{},
		&model.Affiliation{},
		&model.ARSpawn{},
		&model.SpawnLocation{},
		&model.AdminConfig{},
		&model.Notification{},
		&model.ModerationAction{},
	)
}

// Seed inserts the singleton configuration row and the base affiliation
// lookup list. The admin account is seeded only in development.
func Seed(db *gorm.DB, appEnv string) error {
	configRepo := repository.NewConfigRepository(db)
	if err := configRepo.Seed(context.Background()); err != nil {
		return err
	}

	if err := seedAffiliations(db); err != nil {
		return err
	}

	if appEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			return err
		}
	}

	return nil
}

func seedAffiliations(db *gorm.DB) error {
	defaults := []model.Affiliation{
		{Type: "faculty", Name: "Faculty of Engineering"},
		{Type: "faculty", Name: "Faculty of Economics"},
		{Type: "department", Name: "Student Affairs"},
		{Type: "department", Name: "Academic Administration"},
		{Type: "organization", Name: "Student Council"},
	}

	for _, affiliation := range defaults {
		var count int64
		if err := db.Model(&model.Affiliation{}).
			Where("type = ? AND name = ?", affiliation.Type, affiliation.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&affiliation).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@campusgo.app").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Name:         "Administrator",
		Email:        "admin@campusgo.app",
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Email: admin@campusgo.app")
	log.Println("   Password: admin123")

	return nil
}
