package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// gameRow is the table layout of a Record.
type gameRow struct {
	ID        string `gorm:"primaryKey"`
	Spiral    string
	History   string
	Turn      int
	Outcome   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gameRow) TableName() string {
	return "games"
}

func rowOf(rec *Record) *gameRow {
	return &gameRow{
		ID:        rec.ID,
		Spiral:    rec.Spiral,
		History:   rec.History,
		Turn:      rec.Turn,
		Outcome:   rec.Outcome,
		CreatedAt: rec.Created,
		UpdatedAt: rec.Updated,
	}
}

func (r *gameRow) record() *Record {
	return &Record{
		ID:      r.ID,
		Spiral:  r.Spiral,
		History: r.History,
		Turn:    r.Turn,
		Outcome: r.Outcome,
		Created: r.CreatedAt,
		Updated: r.UpdatedAt,
	}
}

// SQLArchive stores records in a SQLite table through gorm.
type SQLArchive struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) a SQLite archive at path and migrates the
// games table.
func OpenSQLite(path string) (*SQLArchive, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite archive at %s: %w", path, err)
	}

	if err := db.AutoMigrate(&gameRow{}); err != nil {
		return nil, fmt.Errorf("migrate games table: %w", err)
	}

	return &SQLArchive{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *SQLArchive) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save upserts a record by id.
func (s *SQLArchive) Save(rec *Record) error {
	if err := validID(rec.ID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var prev gameRow
		err := tx.Where("id = ?", rec.ID).Take(&prev).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			stamp(rec, nil, time.Now())
		case err != nil:
			return err
		default:
			stamp(rec, prev.record(), time.Now())
		}

		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(rowOf(rec)).Error
	})
}

// Load returns the record stored under id.
func (s *SQLArchive) Load(id string) (*Record, error) {
	var row gameRow
	err := s.db.Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row.record(), nil
}

// List returns every record ordered by id.
func (s *SQLArchive) List() ([]*Record, error) {
	var rows []gameRow
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*Record, len(rows))
	for i := range rows {
		out[i] = rows[i].record()
	}
	return out, nil
}

// Delete removes the record stored under id.
func (s *SQLArchive) Delete(id string) error {
	res := s.db.Where("id = ?", id).Delete(&gameRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
