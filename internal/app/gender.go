package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"insquote/internal/domain"
	"insquote/internal/ports"
)

// DefaultInferenceTimeout bounds the external name-prediction lookup so a
// slow collaborator can never stall quote processing.
const DefaultInferenceTimeout = 3 * time.Second

// defaultGender is the fixed fallback when neither the title nor the
// external lookup yields a definite answer. This mirrors the upstream
// business policy; it is a documented default, not a derived one.
const defaultGender = domain.GenderMale

// GenderService composes title-based and name-based gender inference into
// one decision policy: the static title lookup short-circuits the network
// fallback whenever possible, and the fallback degrades to a fixed default
// on any failure. Inference therefore never fails.
type GenderService struct {
	nameClient ports.NameGenderClient
	timeout    time.Duration
	logger     *slog.Logger
}

// GenderServiceConfig contains configuration for the gender service.
type GenderServiceConfig struct {
	// NameClient is the external name-prediction collaborator.
	NameClient ports.NameGenderClient

	// Timeout bounds each name lookup. Defaults to DefaultInferenceTimeout.
	Timeout time.Duration

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewGenderService creates a gender service. Panics if NameClient is nil.
func NewGenderService(cfg GenderServiceConfig) *GenderService {
	if cfg.NameClient == nil {
		panic("GenderService: NameClient is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultInferenceTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GenderService{
		nameClient: cfg.NameClient,
		timeout:    timeout,
		logger:     logger,
	}
}

// Infer resolves a gender from free text such as "Sra. Maria Silva" or a
// bare title. The first whitespace-delimited token is tried as an honorific
// title; a definite match returns immediately without I/O. Otherwise the
// first name is sent to the external collaborator with a bounded timeout,
// and any failure (network, timeout, malformed response, inconclusive
// prediction) silently resolves to the fixed default. The returned gender
// is always GenderMale or GenderFemale.
func (s *GenderService) Infer(ctx context.Context, text string) domain.GenderResolution {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return domain.GenderResolution{Gender: defaultGender, Source: domain.GenderSourceName}
	}

	if g := domain.ResolveTitle(tokens[0]); g != domain.GenderUnknown {
		s.logger.DebugContext(ctx, "gender resolved from title",
			slog.String("gender", string(g)),
		)

		return domain.GenderResolution{Gender: g, Source: domain.GenderSourceTitle}
	}

	return domain.GenderResolution{
		Gender: s.resolveFromName(ctx, firstName(tokens)),
		Source: domain.GenderSourceName,
	}
}

// firstName extracts the first-name candidate: the token following a
// period-terminated (unrecognized) title, else the first token itself.
// Trailing punctuation is stripped so a token like "Maria." reaches the
// prediction API as a bare name.
func firstName(tokens []string) string {
	name := tokens[0]
	if len(tokens) > 1 && strings.HasSuffix(tokens[0], ".") {
		name = tokens[1]
	}

	return strings.TrimRight(name, ".,")
}

// resolveFromName queries the external collaborator with a bounded timeout.
// Failures degrade to the fixed default and are never surfaced to callers.
func (s *GenderService) resolveFromName(ctx context.Context, name string) domain.Gender {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	gender, err := s.nameClient.ResolveFirstName(ctx, name)
	if err != nil || (gender != domain.GenderMale && gender != domain.GenderFemale) {
		s.logger.WarnContext(ctx, "name-based gender inference degraded to default",
			slog.Any("error", err),
		)

		return defaultGender
	}

	return gender
}
