package bootstrap

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
)

const (
	DefaultAdminEmail    = "admin@ice.edu"
	DefaultAdminPassword = "admin123"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Subject{},
		&entity.Book{},
		&entity.Note{},
		&entity.Notice{},
		&entity.StudentDeal{},
		&entity.SocialLink{},
		&entity.SiteSetting{},
	)
}

// Seeder creates the default admin account and baseline rows on first run.
// Safe to invoke on every login request: every step is guarded by a
// count-is-zero check.
type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// EnsureDefaults seeds the default admin, social links and site settings when
// no ADMIN user exists yet. It reports whether the admin was created by this
// call.
func (s *Seeder) EnsureDefaults(ctx context.Context) (bool, error) {
	var adminCount int64
	if err := s.db.WithContext(ctx).Model(&entity.User{}).
		Where("role = ?", entity.RoleAdmin).
		Count(&adminCount).Error; err != nil {
		return false, err
	}
	if adminCount > 0 {
		return false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := entity.User{
		Email:    DefaultAdminEmail,
		Password: string(hashed),
		Name:     "Admin",
		Role:     entity.RoleAdmin,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, err
	}

	if err := s.seedSocialLinks(ctx); err != nil {
		return true, err
	}
	if err := s.seedSettings(ctx); err != nil {
		return true, err
	}

	return true, nil
}

func (s *Seeder) seedSocialLinks(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&entity.SocialLink{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	links := []entity.SocialLink{
		{Platform: "Facebook", URL: "https://facebook.com/icedept", Icon: stringPtr("facebook"), Order: 1},
		{Platform: "YouTube", URL: "https://youtube.com/@icedept", Icon: stringPtr("youtube"), Order: 2},
		{Platform: "Website", URL: "https://ice.edu", Icon: stringPtr("globe"), Order: 3},
	}
	return s.db.WithContext(ctx).Create(&links).Error
}

func (s *Seeder) seedSettings(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&entity.SiteSetting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := []entity.SiteSetting{
		{Key: "siteName", Value: "Helping Hand", Description: stringPtr("Site name")},
		{Key: "siteDescription", Value: "ICE Department Ebook & Notes Management System", Description: stringPtr("Site description")},
		{Key: "bkashNumber", Value: "01521706294", Description: stringPtr("Bkash number for donations")},
		{Key: "departmentName", Value: "ICE Department", Description: stringPtr("Department name")},
	}
	return s.db.WithContext(ctx).Create(&settings).Error
}

func stringPtr(s string) *string {
	return &s
}
