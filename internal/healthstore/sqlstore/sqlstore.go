// Package sqlstore is a health store backed by gorm, on sqlite or postgres.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/luki/wristtemp/internal/healthstore"
)

// Store implements healthstore.Store over a gorm connection.
type Store struct {
	db        *gorm.DB
	autoGrant bool
}

var _ healthstore.Store = (*Store)(nil)

// New wraps an open connection. With autoGrant, the first authorization
// request for a type is recorded as granted; otherwise it is recorded as
// denied until changed with SetAuthorization.
func New(db *gorm.DB, autoGrant bool) *Store {
	return &Store{db: db, autoGrant: autoGrant}
}

// Open connects with the named driver ("sqlite" or "postgres") and migrates
// the schema.
func Open(driver, dsn string, autoGrant bool) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		if dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("cannot create db dir: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return New(db, autoGrant), nil
}

// Migrate creates or updates the samples and authorizations tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SampleModel{}, &AuthorizationModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsHealthDataAvailable reports whether the database answers and the
// samples table exists.
func (s *Store) IsHealthDataAvailable(ctx context.Context) bool {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return false
	}
	return s.db.WithContext(ctx).Migrator().HasTable(&SampleModel{})
}

// RequestAuthorization checks the stored grant for every type, recording a
// new one according to the auto-grant policy when none exists.
func (s *Store) RequestAuthorization(ctx context.Context, read []healthstore.SampleType) error {
	if !s.IsHealthDataAvailable(ctx) {
		return healthstore.ErrHealthDataUnavailable
	}
	for _, t := range read {
		if _, err := healthstore.LookupType(t.ID); err != nil {
			return err
		}

		var auth AuthorizationModel
		err := s.db.WithContext(ctx).Where("type_id = ?", t.ID).First(&auth).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth = AuthorizationModel{TypeID: t.ID, Status: StatusDenied}
			if s.autoGrant {
				auth.Status = StatusGranted
			}
			if err := s.db.WithContext(ctx).Create(&auth).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if auth.Status != StatusGranted {
			return fmt.Errorf("%w: %s", healthstore.ErrAuthorizationDenied, t.ID)
		}
	}
	return nil
}

// SetAuthorization stores the grant for t, replacing any previous decision.
func (s *Store) SetAuthorization(ctx context.Context, t healthstore.SampleType, granted bool) error {
	status := StatusDenied
	if granted {
		status = StatusGranted
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&AuthorizationModel{TypeID: t.ID, Status: status}).Error
}

// Execute runs q against the samples table. Without sort descriptors rows
// come back in insertion order.
func (s *Store) Execute(ctx context.Context, q healthstore.Query) ([]healthstore.Object, error) {
	if !s.IsHealthDataAvailable(ctx) {
		return nil, healthstore.ErrHealthDataUnavailable
	}

	tx := s.db.WithContext(ctx).Where("type_id = ?", q.Type.ID)
	if p := q.Predicate; p != nil {
		if !p.From.IsZero() {
			tx = tx.Where("start_date >= ?", p.From.UTC())
		}
		if !p.To.IsZero() {
			tx = tx.Where("start_date < ?", p.To.UTC())
		}
	}
	for _, d := range q.Sort {
		col := "start_date"
		if d.Key == healthstore.SortByEndDate {
			col = "end_date"
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: !d.Ascending})
	}
	if len(q.Sort) == 0 {
		tx = tx.Order("id ASC")
	}
	if q.Limit > healthstore.NoLimit {
		tx = tx.Limit(q.Limit)
	}

	var rows []SampleModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	objects := make([]healthstore.Object, 0, len(rows))
	for _, r := range rows {
		o, err := r.toObject()
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", r.UUID, err)
		}
		objects = append(objects, o)
	}
	return objects, nil
}

// Save inserts samples, ignoring ones whose UUID is already stored.
func (s *Store) Save(ctx context.Context, objects []healthstore.Object) error {
	rows := lo.FilterMap(objects, func(o healthstore.Object, _ int) (SampleModel, bool) {
		return toModel(o)
	})
	if len(rows) != len(objects) {
		return fmt.Errorf("cannot store %d of %d objects", len(objects)-len(rows), len(objects))
	}
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, 200).Error
}
