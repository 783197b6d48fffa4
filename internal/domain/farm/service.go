package farm

import (
	"context"
	"fmt"
	"time"

	"milkledger/internal/core/apperror"
	"milkledger/internal/core/dateutil"
	"milkledger/internal/core/id"
	"milkledger/pkg/logger"
)

// Service provides business logic for the production log.
type Service struct {
	repo Repository
}

// NewService creates a farm service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertProduction records a day's morning and evening production. An
// existing record for the day is overwritten, but its opening-stock
// override survives the rewrite.
func (s *Service) UpsertProduction(ctx context.Context, date string, morning, evening float64) (*FarmRecord, error) {
	now := time.Now().UTC()
	r := &FarmRecord{
		ID:         id.New(),
		Date:       date,
		MorningQty: morning,
		EveningQty: evening,
		TotalQty:   morning + evening,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	existing, err := s.repo.GetByDate(ctx, date)
	switch {
	case err == nil:
		r.ID = existing.ID
		r.OpeningStock = existing.OpeningStock
		r.CreatedAt = existing.CreatedAt
	case !apperror.IsNotFound(err):
		return nil, err
	}

	if err := r.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("upsert production: %w", err)
	}
	return r, nil
}

// SetOpeningStock pins a day's opening stock to a manual value, creating
// an empty production record for the day if none exists yet.
func (s *Service) SetOpeningStock(ctx context.Context, date string, value float64) (*FarmRecord, error) {
	return s.setOverride(ctx, date, ManualStock(value))
}

// RevertOpeningStock drops a day's manual opening stock so the value is
// derived again.
func (s *Service) RevertOpeningStock(ctx context.Context, date string) (*FarmRecord, error) {
	return s.setOverride(ctx, date, AutoStock())
}

func (s *Service) setOverride(ctx context.Context, date string, o StockOverride) (*FarmRecord, error) {
	if !dateutil.IsDay(date) {
		return nil, apperror.NewValidation("invalid date, expected YYYY-MM-DD").
			WithDetail("value", date)
	}

	r, err := s.repo.GetByDate(ctx, date)
	switch {
	case apperror.IsNotFound(err):
		now := time.Now().UTC()
		r = &FarmRecord{ID: id.New(), Date: date, CreatedAt: now, UpdatedAt: now}
	case err != nil:
		return nil, err
	}

	r.OpeningStock = o
	r.UpdatedAt = time.Now().UTC()
	if err := r.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("set opening stock: %w", err)
	}

	if v, ok := o.Manual(); ok {
		logger.Info(ctx, "opening stock pinned", "date", date, "value", v)
	} else {
		logger.Info(ctx, "opening stock reverted", "date", date)
	}
	return r, nil
}

// GetByDate retrieves one day's production record.
func (s *Service) GetByDate(ctx context.Context, date string) (*FarmRecord, error) {
	return s.repo.GetByDate(ctx, date)
}

// List retrieves the full production log, oldest first.
func (s *Service) List(ctx context.Context) ([]FarmRecord, error) {
	return s.repo.List(ctx)
}

// Delete removes one day's production record together with any override.
func (s *Service) Delete(ctx context.Context, recordID id.ID) error {
	return s.repo.Delete(ctx, recordID)
}
