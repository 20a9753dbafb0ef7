package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Repository aggregate of all repositories
type Repository struct {
	db *gorm.DB

	User    UserRepository
	Driver  DriverRepository
	SIJ     SIJRepository
	Ritase  RitaseRepository
	Audit   AuditRepository
	Absence AbsenceRepository
	Report  ReportRepository
}

// NewRepository wires every repository onto db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:      db,
		User:    NewUserRepo(db),
		Driver:  NewDriverRepo(db),
		SIJ:     NewSIJRepo(db),
		Ritase:  NewRitaseRepo(db),
		Audit:   NewAuditRepo(db),
		Absence: NewAbsenceRepo(db),
		Report:  NewReportRepo(db),
	}
}

// BeginTx starts a transaction. Returns a nil tx when the aggregate has no
// database attached (unit tests with mock repositories).
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns an aggregate bound to tx; nil tx returns r unchanged.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// RunInTx runs fn inside one transaction, rolling back on error or panic.
func (r *Repository) RunInTx(ctx context.Context, fn func(txRepo *Repository) error) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(p)
		}
	}()

	if err := fn(r.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
	}
	return nil
}

// ── shared query helpers ──

// Sort requested ordering from a list endpoint
type Sort struct {
	By  string
	Dir string
}

// orderClause resolves s against a column whitelist. Unknown columns fall
// back to def; any direction other than "desc" is ascending.
func orderClause(s Sort, allowed map[string]bool, def string) string {
	col := def
	if allowed[s.By] {
		col = s.By
	}
	dir := "ASC"
	if strings.EqualFold(s.Dir, "desc") {
		dir = "DESC"
	}
	return col + " " + dir
}

// likePattern wraps a search term for ILIKE
func likePattern(q string) string {
	return "%" + strings.TrimSpace(q) + "%"
}

// DayCount number of rows for a driver on a date
type DayCount struct {
	DriverID string
	Date     string
	Count    int
}
