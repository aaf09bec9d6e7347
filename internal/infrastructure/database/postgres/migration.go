// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayuraa/wellness-backend/internal/domain/booking"
	"github.com/ayuraa/wellness-backend/internal/domain/goal"
	"github.com/ayuraa/wellness-backend/internal/domain/healer"
	"github.com/ayuraa/wellness-backend/internal/domain/identity"
	"github.com/ayuraa/wellness-backend/internal/domain/profile"
	"github.com/ayuraa/wellness-backend/internal/domain/wishlist"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// Models lists every persisted model in dependency order
func Models() []any {
	return []any{
		&identity.Account{},
		&profile.Profile{},
		&booking.Booking{},
		&goal.Goal{},
		&wishlist.WishlistItem{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	for _, model := range Models() {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates the composite indexes the list queries use
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_profiles_role_rating ON profiles(role, rating DESC)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_user_created ON bookings(user_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_healer_created ON bookings(healer_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_healer_status ON bookings(healer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_goals_user_created ON goals(user_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_wishlist_items_user_added ON wishlist_items(user_id, added_at)",
	}

	failed := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("Failed to create index")
			failed++
		}
	}

	m.logger.WithFields(logrus.Fields{
		"created": len(indexes) - failed,
		"failed":  failed,
	}).Info("Database indexes ensured")
	return nil
}

// Demo credentials created by SeedInitialData
const (
	DemoUserEmail    = "demo@ayuraa.example"
	DemoUserPassword = "namaste123"
)

// SeedInitialData loads the built-in healer directory as healer profiles and
// creates a demo account. Existing rows are left alone.
func (m *Migration) SeedInitialData() error {
	m.logger.Info("Seeding initial data")

	if err := m.seedHealers(); err != nil {
		return fmt.Errorf("failed to seed healers: %w", err)
	}
	if err := m.seedDemoUser(); err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	m.logger.Info("Initial data seeded")
	return nil
}

func (m *Migration) seedHealers() error {
	now := time.Now().UTC()
	for _, h := range healer.Fallback() {
		var count int64
		if err := m.db.Model(&profile.Profile{}).Where("id = ?", h.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		bio := h.Bio
		pricing := fmt.Sprintf("₹%.0f/session", h.Price)
		specialties := append([]string{h.Category}, h.Specialties...)
		p := &profile.Profile{
			ID:           h.ID,
			Email:        strings.ReplaceAll(h.ID, "-", "") + "@healers.ayuraa.example",
			Name:         h.Name,
			Role:         profile.RoleHealer,
			Bio:          &bio,
			Pricing:      &pricing,
			Specialties:  specialties,
			Rating:       h.Rating,
			ReviewsCount: h.ReviewsCount,
			Healer:       &profile.HealerDetails{Availability: h.Availability, Languages: []string{"English"}},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := m.db.Create(p).Error; err != nil {
			return err
		}
		m.logger.WithField("healer_id", h.ID).Debug("Seeded healer")
	}
	return nil
}

func (m *Migration) seedDemoUser() error {
	var count int64
	if err := m.db.Model(&identity.Account{}).Where("email = ?", DemoUserEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	const id = "demo-user"
	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&identity.Account{
			ID:           id,
			Email:        DemoUserEmail,
			PasswordHash: string(hash),
			Name:         "Demo User",
			Role:         identity.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&profile.Profile{
			ID:          id,
			Email:       DemoUserEmail,
			Name:        "Demo User",
			Role:        profile.RoleUser,
			Specialties: []string{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}).Error
	})
}

// DropAllTables drops every table in reverse dependency order
func (m *Migration) DropAllTables() error {
	m.logger.Warn("Dropping all database tables")

	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := m.db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", models[i], err)
		}
	}
	return nil
}

// TableCounts returns the number of rows in each table
func (m *Migration) TableCounts() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: m.db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse %T: %w", model, err)
		}
		var n int64
		if err := m.db.Model(model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", stmt.Schema.Table, err)
		}
		counts[stmt.Schema.Table] = n
	}
	return counts, nil
}
