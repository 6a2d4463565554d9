package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"insquote/internal/domain"
	"insquote/internal/ports"
)

// QuoteService orchestrates the quoting pipeline: validation, gender
// inference, rate derivation, premium computation, persistence. It depends
// on port interfaces, not concrete implementations.
type QuoteService struct {
	store  ports.QuoteStore
	gender *GenderService
	logger *slog.Logger
	now    func() time.Time
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Store  ports.QuoteStore
	Gender *GenderService
	Logger *slog.Logger

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewQuoteService creates a quote service with the provided dependencies.
// Panics if Store or Gender is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil {
		panic("QuoteService: Store is required")
	}

	if cfg.Gender == nil {
		panic("QuoteService: Gender is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &QuoteService{
		store:  cfg.Store,
		gender: cfg.Gender,
		logger: logger,
		now:    now,
	}
}

// CreateQuote runs the full pipeline for one request.
//
// Validation failures short-circuit before any rate or premium computation
// and return a domain.ValidationErrors with every violated field. Gender
// inference never fails (it degrades to a fixed default). A persistence
// failure is returned as a domain.StorageError that still carries the
// computed quote, so the caller may retry with the same input.
func (s *QuoteService) CreateQuote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	n, fieldErrs := ValidateQuoteRequest(req, domain.Date(s.now().UTC()))
	if len(fieldErrs) > 0 {
		s.logger.InfoContext(ctx, "quote request rejected",
			slog.Int("field_errors", len(fieldErrs)),
		)

		return nil, domain.NewValidationErrors(fieldErrs)
	}

	source := domain.GenderSourceRequest
	if n.Gender == domain.GenderUnknown {
		res := s.gender.Infer(ctx, n.Name)
		n.Gender = res.Gender
		source = res.Source
	}

	quote := buildQuote(n)

	if err := s.store.Insert(ctx, quote); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist quote",
			slog.Any("error", err),
		)

		return nil, domain.NewStorageError("insert quote", quote, err)
	}

	s.logger.InfoContext(ctx, "quote created",
		slog.Int64("quote_id", quote.ID),
		slog.String("gender_source", string(source)),
		slog.String("premium", quote.Premium.String()),
	)

	return quote, nil
}

// GetQuote retrieves a persisted quote by its identifier.
func (s *QuoteService) GetQuote(ctx context.Context, id int64) (*domain.Quote, error) {
	quote, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return quote, nil
}

// ListQuotes returns all persisted quotes, newest first.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]*domain.Quote, error) {
	quotes, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	return quotes, nil
}

// InferGender exposes gender inference as its own use case, backing the
// standalone gender endpoint.
func (s *QuoteService) InferGender(ctx context.Context, text string) domain.GenderResolution {
	return s.gender.Infer(ctx, text)
}

// buildQuote computes rates and premium for a normalized request and
// assembles the unpersisted quote. Pure given its input: ID and CreatedAt
// are filled by the store on insert.
func buildQuote(n domain.NormalizedRequest) *domain.Quote {
	base, adjusted := domain.ComputeRates(n)
	days := domain.CoverageDaysBetween(n.StartDate, n.EndDate)
	years := domain.CoverageYears(days)
	premium := domain.ComputePremium(n.Capital, adjusted, days)

	return &domain.Quote{
		Name:          n.Name,
		TaxpayerID:    n.TaxpayerID,
		Gender:        n.Gender,
		BirthDate:     n.BirthDate,
		StartDate:     n.StartDate,
		EndDate:       n.EndDate,
		Capital:       n.Capital,
		BaseRate:      base,
		AdjustedRate:  adjusted,
		CoverageDays:  days,
		CoverageYears: years.Round(2),
		Premium:       premium,
		Description: fmt.Sprintf(
			"Life coverage over %d days at base annual rate %s%%, adjusted to %s%%.",
			days,
			base.Shift(2).String(),
			adjusted.Shift(2).String(),
		),
	}
}
