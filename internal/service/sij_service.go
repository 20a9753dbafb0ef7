package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"raja-digital/config"
	"raja-digital/internal/dto"
	"raja-digital/internal/model"
	"raja-digital/internal/receipt"
	"raja-digital/internal/repository"
	"raja-digital/internal/weekly"
)

// ── SIJ errors ──

var (
	ErrSIJNotFound      = errors.New("Transaksi tidak ditemukan")
	ErrDriverInactive   = errors.New("Driver tidak ditemukan atau tidak aktif")
	ErrSIJDateFormat    = errors.New("Format tanggal tidak valid (gunakan YYYY-MM-DD)")
	ErrSIJDateRange     = errors.New("Tanggal harus antara hari ini dan 7 hari ke depan")
	ErrSIJDuplicate     = errors.New("Driver sudah memiliki SIJ aktif")
	ErrVoidExpired      = errors.New("Tidak dapat void transaksi lebih dari 24 jam")
	ErrSIJAlreadyVoid   = errors.New("Transaksi sudah di-void")
	ErrUnknownCategory  = errors.New("Kategori tidak dikenal")
	ErrSIJIDUnavailable = errors.New("Gagal membuat ID transaksi, coba lagi")
)

// randSuffix three digit suffix of a transaction id
var randSuffix = func() int { return 100 + rand.Intn(900) }

// SIJService road permit issuance
type SIJService interface {
	Price(category string) (*dto.PriceResponse, error)
	Create(ctx context.Context, sess *dto.Session, req *dto.CreateSIJRequest) (*model.SIJTransaction, error)
	List(ctx context.Context, req *dto.SIJListRequest) ([]model.SIJTransaction, error)
	Get(ctx context.Context, id string) (*model.SIJTransaction, error)
	Receipt(ctx context.Context, id string) (*receipt.Transaction, *receipt.Receipts, error)
	Void(ctx context.Context, sess *dto.Session, id string) error
	Update(ctx context.Context, id string, req *dto.UpdateSIJRequest) (*model.SIJTransaction, error)
	Delete(ctx context.Context, id string) error
}

type sijService struct {
	cfg    *config.BusinessConfig
	repo   *repository.Repository
	cache  *weeklyCache
	clock  Clock
	logger *zap.Logger
}

// NewSIJService creates a SIJService
func NewSIJService(
	cfg *config.BusinessConfig,
	repo *repository.Repository,
	cache *weeklyCache,
	clock Clock,
	logger *zap.Logger,
) SIJService {
	return &sijService{cfg: cfg, repo: repo, cache: cache, clock: clock, logger: logger}
}

// categoryPrice server-side amount for a stored driver category; unknown
// categories are charged the standar price.
func categoryPrice(category string) int64 {
	if p, ok := receipt.ListPrice(category); ok {
		return p
	}
	p, _ := receipt.ListPrice(model.CategoryStandar)
	return p
}

func (s *sijService) Price(category string) (*dto.PriceResponse, error) {
	c := strings.ToLower(strings.TrimSpace(category))
	p, ok := receipt.ListPrice(c)
	if !ok {
		return nil, ErrUnknownCategory
	}
	return &dto.PriceResponse{Category: c, Price: p, Label: receipt.FormatRupiah(p)}, nil
}

// resolveDate validates the optional target date against today..today+N.
func (s *sijService) resolveDate(raw string, now time.Time) (string, error) {
	today := now.Format(weekly.DateLayout)
	if strings.TrimSpace(raw) == "" {
		return today, nil
	}
	target, err := time.ParseInLocation(weekly.DateLayout, strings.TrimSpace(raw), s.clock.Location())
	if err != nil {
		return "", ErrSIJDateFormat
	}
	start, _ := time.ParseInLocation(weekly.DateLayout, today, s.clock.Location())
	limit := start.AddDate(0, 0, s.cfg.SIJAdvanceDays)
	if target.Before(start) || target.After(limit) {
		return "", ErrSIJDateRange
	}
	return target.Format(weekly.DateLayout), nil
}

// ────────────────────── Create ──────────────────────

func (s *sijService) Create(ctx context.Context, sess *dto.Session, req *dto.CreateSIJRequest) (*model.SIJTransaction, error) {
	now := s.clock.Now()

	// 1. driver must exist and be active
	driver, err := s.repo.Driver.GetByID(ctx, strings.TrimSpace(req.DriverID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverInactive
		}
		return nil, err
	}
	if driver.Status != model.DriverActive {
		return nil, ErrDriverInactive
	}

	// 2. date window
	date, err := s.resolveDate(req.Date, now)
	if err != nil {
		return nil, err
	}

	// 3. one active permit per driver per date
	exists, err := s.repo.SIJ.ExistsActive(ctx, driver.DriverID, date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s untuk tanggal %s", ErrSIJDuplicate, driver.Name, date)
	}

	// 4. id = driver_id + YYYYMMDD + 3 digits
	id, err := s.newTransactionID(ctx, driver.DriverID, date)
	if err != nil {
		return nil, err
	}

	sheets := req.Sheets
	if sheets < 1 {
		sheets = s.cfg.DefaultSheets
	}

	tx := &model.SIJTransaction{
		TransactionID: id,
		DriverID:      driver.DriverID,
		DriverName:    driver.Name,
		Category:      driver.Category,
		Date:          date,
		Time:          now.Format("15:04:05"),
		Sheets:        sheets,
		Amount:        categoryPrice(driver.Category),
		QRISRef:       strings.TrimSpace(req.QRISRef),
		AdminID:       sess.UserID,
		AdminName:     sess.Name,
		Shift:         DetectShift(now),
		Status:        model.SIJActive,
		CreatedModel:  model.CreatedModel{CreatedAt: now},
	}

	// 5. persist permit, monthly counter and audit row together
	err = s.repo.RunInTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.SIJ.Create(ctx, tx); err != nil {
			return err
		}
		if err := txRepo.Driver.IncrementSIJMonth(ctx, driver.DriverID); err != nil {
			return err
		}
		if err := txRepo.Audit.MarkSIJ(ctx, date, driver.DriverID); err != nil {
			return err
		}
		return txRepo.Driver.RefreshMismatchCount(ctx, driver.DriverID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s untuk tanggal %s", ErrSIJDuplicate, driver.Name, date)
		}
		s.logger.Error("create sij failed", zap.String("driver_id", driver.DriverID), zap.Error(err))
		return nil, err
	}

	s.cache.evict(ctx, date)
	s.logger.Info("sij created",
		zap.String("transaction_id", id),
		zap.String("driver_id", driver.DriverID),
		zap.String("date", date),
		zap.Int64("amount", tx.Amount),
		zap.String("admin_id", sess.UserID),
	)
	return tx, nil
}

func (s *sijService) newTransactionID(ctx context.Context, driverID, date string) (string, error) {
	compact := strings.ReplaceAll(date, "-", "")
	for attempt := 0; attempt < 5; attempt++ {
		id := fmt.Sprintf("%s%s%d", driverID, compact, randSuffix())
		if _, err := s.repo.SIJ.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
			return id, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", ErrSIJIDUnavailable
}

// ────────────────────── Query ──────────────────────

func (s *sijService) List(ctx context.Context, req *dto.SIJListRequest) ([]model.SIJTransaction, error) {
	return s.repo.SIJ.List(ctx, repository.SIJFilter{
		Date:        req.Date,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Shift:       req.Shift,
		Search:      req.Search,
		IncludeVoid: req.IncludeVoid,
		Sort:        sortOf(req.SortRequest, "desc"),
	})
}

func (s *sijService) Get(ctx context.Context, id string) (*model.SIJTransaction, error) {
	tx, err := s.repo.SIJ.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSIJNotFound
		}
		return nil, err
	}
	return tx, nil
}

// Receipt renders the printed forms of a stored transaction.
func (s *sijService) Receipt(ctx context.Context, id string) (*receipt.Transaction, *receipt.Receipts, error) {
	tx, err := s.repo.SIJ.GetWithPlate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSIJNotFound
		}
		return nil, nil, err
	}

	rt := toReceipt(tx)
	out, err := receipt.Render(rt)
	if err != nil {
		return nil, nil, err
	}
	return rt, out, nil
}

func toReceipt(tx *model.SIJTransaction) *receipt.Transaction {
	return &receipt.Transaction{
		TransactionID: tx.TransactionID,
		DriverName:    tx.DriverName,
		Plate:         tx.Plate,
		Category:      tx.Category,
		Date:          tx.Date,
		Time:          tx.Time,
		AdminName:     tx.AdminName,
		QRISRef:       tx.QRISRef,
		Amount:        tx.Amount,
		Sheets:        tx.Sheets,
	}
}

// ────────────────────── Void ──────────────────────

func (s *sijService) Void(ctx context.Context, sess *dto.Session, id string) error {
	tx, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if tx.Status == model.SIJVoid {
		return ErrSIJAlreadyVoid
	}
	if s.clock.Now().Sub(tx.CreatedAt) > s.cfg.VoidWindow {
		return ErrVoidExpired
	}

	err = s.repo.RunInTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.SIJ.UpdateStatus(ctx, id, model.SIJVoid); err != nil {
			return err
		}
		if err := txRepo.Audit.ClearSIJ(ctx, tx.Date, tx.DriverID); err != nil {
			return err
		}
		return txRepo.Driver.RefreshMismatchCount(ctx, tx.DriverID)
	})
	if err != nil {
		s.logger.Error("void sij failed", zap.String("transaction_id", id), zap.Error(err))
		return err
	}

	s.cache.evict(ctx, tx.Date)
	s.logger.Info("sij voided", zap.String("transaction_id", id), zap.String("by", sess.UserID))
	return nil
}

// ────────────────────── Update / Delete ──────────────────────

func (s *sijService) Update(ctx context.Context, id string, req *dto.UpdateSIJRequest) (*model.SIJTransaction, error) {
	tx, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldDriver, oldDate := tx.DriverID, tx.Date

	if req.DriverID != nil && *req.DriverID != tx.DriverID {
		d, err := s.repo.Driver.GetByID(ctx, *req.DriverID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDriverNotFound
			}
			return nil, err
		}
		tx.DriverID = d.DriverID
		tx.DriverName = d.Name
		tx.Category = d.Category
	}
	if req.Date != nil {
		tx.Date = *req.Date
	}
	if req.Sheets != nil {
		tx.Sheets = *req.Sheets
	}
	if req.QRISRef != nil {
		tx.QRISRef = strings.TrimSpace(*req.QRISRef)
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	moved := tx.DriverID != oldDriver || tx.Date != oldDate
	err = s.repo.RunInTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.SIJ.Update(ctx, tx); err != nil {
			return err
		}
		if !moved || tx.Status != model.SIJActive {
			return nil
		}
		if err := txRepo.Audit.ClearSIJ(ctx, oldDate, oldDriver); err != nil {
			return err
		}
		if err := txRepo.Audit.MarkSIJ(ctx, tx.Date, tx.DriverID); err != nil {
			return err
		}
		if err := txRepo.Driver.RefreshMismatchCount(ctx, oldDriver); err != nil {
			return err
		}
		return txRepo.Driver.RefreshMismatchCount(ctx, tx.DriverID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s untuk tanggal %s", ErrSIJDuplicate, tx.DriverName, tx.Date)
		}
		s.logger.Error("update sij failed", zap.String("transaction_id", id), zap.Error(err))
		return nil, err
	}

	s.cache.evict(ctx, oldDate, tx.Date)
	return tx, nil
}

func (s *sijService) Delete(ctx context.Context, id string) error {
	tx, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.RunInTx(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.SIJ.Delete(ctx, id); err != nil {
			return err
		}
		if tx.Status != model.SIJActive {
			return nil
		}
		if err := txRepo.Audit.ClearSIJ(ctx, tx.Date, tx.DriverID); err != nil {
			return err
		}
		return txRepo.Driver.RefreshMismatchCount(ctx, tx.DriverID)
	})
	if err != nil {
		s.logger.Error("delete sij failed", zap.String("transaction_id", id), zap.Error(err))
		return err
	}

	s.cache.evict(ctx, tx.Date)
	s.logger.Info("sij deleted", zap.String("transaction_id", id))
	return nil
}
