// Package acl translates between external service DTOs and domain types,
// keeping external representations from leaking into the domain.
package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"insquote/internal/adapters/clients"
	"insquote/internal/domain"
	"insquote/internal/platform/logging"
)

// serviceName identifies the name-prediction service in errors, logs, and
// health checks.
const serviceName = "genderize"

// GenderClientConfig contains configuration for the gender client.
type GenderClientConfig struct {
	// Client is the HTTP client to use for requests. Its BaseURL should
	// point at the name-prediction API (e.g. "https://api.genderize.io").
	Client *clients.Client

	// APIKey is the optional API key sent on every request.
	APIKey string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// GenderClient implements ports.NameGenderClient against the genderize.io
// API. It translates the external prediction DTO to the domain Gender and
// maps every transport or protocol failure to a domain error, so callers
// never see HTTP details.
type GenderClient struct {
	client *clients.Client
	apiKey string
	logger *slog.Logger
}

// NewGenderClient creates a gender client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewGenderClient(cfg GenderClientConfig) *GenderClient {
	if cfg.Client == nil {
		panic("GenderClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GenderClient{
		client: cfg.Client,
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// genderizeResponse is the external DTO. Never exposed outside this package.
type genderizeResponse struct {
	Name        string  `json:"name"`
	Gender      string  `json:"gender"`
	Probability float64 `json:"probability"`
	Count       int64   `json:"count"`
}

// ResolveFirstName predicts the gender for a first name.
// Implements ports.NameGenderClient.
//
// An unknown name (the API returns a null gender) yields
// domain.ErrInconclusive; transport failures, rate limiting, and unexpected
// statuses yield an unavailable error. Callers degrade to their own default
// on either.
func (c *GenderClient) ResolveFirstName(ctx context.Context, firstName string) (domain.Gender, error) {
	path := c.buildPath(firstName)
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return domain.GenderUnknown, domain.NewUnavailableError(serviceName, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return domain.GenderUnknown, c.handleErrorResponse(resp)
	}

	return c.parsePrediction(ctx, resp.Body)
}

// buildPath assembles the query path for a name lookup.
func (c *GenderClient) buildPath(firstName string) string {
	q := url.Values{}
	q.Set("name", firstName)
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}

	return "/?" + q.Encode()
}

// parsePrediction reads the external DTO and translates it to a domain
// Gender. This is the core translation of the layer.
func (c *GenderClient) parsePrediction(ctx context.Context, body io.Reader) (domain.Gender, error) {
	var external genderizeResponse

	if err := json.NewDecoder(body).Decode(&external); err != nil {
		return domain.GenderUnknown, domain.NewUnavailableError(serviceName,
			fmt.Sprintf("decoding prediction response: %v", err))
	}

	gender := translateGender(external.Gender)

	c.logger.Log(ctx, logging.LevelTrace, "translated external DTO to domain",
		slog.String("prediction", external.Gender),
		slog.Float64("probability", external.Probability),
		slog.Int64("count", external.Count))

	if gender == domain.GenderUnknown {
		return domain.GenderUnknown, fmt.Errorf("%w: no prediction for name %q",
			domain.ErrInconclusive, external.Name)
	}

	return gender, nil
}

// translateGender maps the external prediction string to the domain Gender.
func translateGender(prediction string) domain.Gender {
	switch prediction {
	case "male":
		return domain.GenderMale
	case "female":
		return domain.GenderFemale
	default:
		return domain.GenderUnknown
	}
}

// handleErrorResponse converts HTTP error responses to domain errors.
func (c *GenderClient) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	c.logger.Warn("name-prediction API error",
		slog.Int("status_code", resp.StatusCode),
		slog.String("body", string(body)),
	)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusPaymentRequired:
		return domain.NewUnavailableError(serviceName, "invalid or exhausted API key")
	case http.StatusUnprocessableEntity:
		return domain.NewUnavailableError(serviceName, "missing name parameter")
	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("unexpected HTTP %d", resp.StatusCode))
	}
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *GenderClient) Name() string {
	return serviceName
}

// Check verifies connectivity with a lookup of a fixed name.
// Implements ports.HealthChecker.
func (c *GenderClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, c.buildPath("ana"))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("name-prediction API returned status %d", resp.StatusCode)
	}

	return nil
}
