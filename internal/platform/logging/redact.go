package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// taxpayerIDPattern matches an 11-digit taxpayer ID with or without its
// usual formatting punctuation (123.456.789-01).
var taxpayerIDPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)

// DefaultRedactOptions returns the masq options for secret redaction.
// Taxpayer IDs are personal data and must never appear in logs, in any
// field or format.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("apiKey"),
		masq.WithFieldName("apikey"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("cookie"),

		masq.WithFieldName("taxpayer_id"),
		masq.WithFieldName("taxpayerId"),
		masq.WithFieldName("cpf"),

		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),

		masq.WithRegex(taxpayerIDPattern),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions that
// redacts sensitive data.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)

	return masq.New(allOpts...)
}
