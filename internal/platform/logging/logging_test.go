package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Context tests

func TestFromContext_NoLogger(t *testing.T) {
	logger := FromContext(context.Background())

	assert.NotNil(t, logger)
	assert.Equal(t, defaultLogger, logger)
}

func TestFromContext_WithLogger(t *testing.T) {
	customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithContext(context.Background(), customLogger)

	assert.Equal(t, customLogger, FromContext(ctx))
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithContext(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-123")

	FromContext(ctx).InfoContext(ctx, "test message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestWithTraceAndCorrelationIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithContext(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-123")
	ctx = WithTraceID(ctx, "trace-456")
	ctx = WithCorrelationID(ctx, "corr-789")

	FromContext(ctx).Info("all ids")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "trace-456", entry["trace_id"])
	assert.Equal(t, "corr-789", entry["correlation_id"])
}

func TestSetDefault(t *testing.T) {
	originalDefault := defaultLogger
	defer SetDefault(originalDefault)

	customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	SetDefault(customLogger)

	assert.Equal(t, customLogger, FromContext(context.Background()))
}

// Logger tests

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{
		Level:   "info",
		Format:  "json",
		Service: "insquote",
		Version: "1.0.0",
	}, &buf)

	logger.Info("test message", slog.String("key", "value"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "insquote", entry["service_name"])
	assert.Equal(t, "1.0.0", entry["service_version"])
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{
		Level:   "debug",
		Format:  "text",
		Service: "insquote",
		Version: "1.0.0",
	}, &buf)

	logger.Debug("debug message")

	assert.Contains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "insquote")
}

func TestNewWithWriter_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{
		Level:   "info",
		Format:  "pretty",
		Service: "insquote",
		Version: "1.0.0",
	}, &buf)

	logger.Info("pretty message")

	assert.Contains(t, buf.String(), "pretty message")
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{
		Level:  "warn",
		Format: "json",
	}, &buf)

	logger.Info("filtered out")

	assert.Empty(t, buf.String())
}

func TestNewWithWriter_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	var buf bytes.Buffer
	logger := NewWithWriter(&Config{
		Level:   "info",
		Format:  "json",
		Service: "insquote",
		Version: "1.0.0",
		File: FileConfig{
			Enabled:    true,
			Path:       logFile,
			MaxSizeMB:  1,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}, &buf)

	logger.Info("goes to both sinks")

	assert.Contains(t, buf.String(), "goes to both sinks")
	require.FileExists(t, logFile)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "goes to both sinks")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.input), "level %q", tt.input)
	}
}

func TestSlogToCharmLevel(t *testing.T) {
	tests := []struct {
		input    slog.Level
		expected charmlog.Level
	}{
		{LevelTrace, charmlog.DebugLevel},
		{slog.LevelDebug, charmlog.DebugLevel},
		{slog.LevelInfo, charmlog.InfoLevel},
		{slog.LevelWarn, charmlog.WarnLevel},
		{slog.LevelError, charmlog.ErrorLevel},
		{slog.Level(12), charmlog.ErrorLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, slogToCharmLevel(tt.input))
	}
}

// MultiHandler tests

func TestMultiHandler_Handle(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	handler1 := slog.NewJSONHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelDebug})
	handler2 := slog.NewJSONHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(NewMultiHandler(handler1, handler2))

	logger.Info("both sinks")
	assert.Contains(t, buf1.String(), "both sinks")
	assert.Contains(t, buf2.String(), "both sinks")

	buf1.Reset()
	buf2.Reset()

	logger.Debug("first sink only")
	assert.Contains(t, buf1.String(), "first sink only")
	assert.Empty(t, buf2.String())
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	multi := NewMultiHandler(
		slog.NewJSONHandler(&buf1, nil),
		slog.NewJSONHandler(&buf2, nil),
	)

	logger := slog.New(multi.WithAttrs([]slog.Attr{slog.String("attr1", "value1")}))
	logger.Info("test message")

	assert.Contains(t, buf1.String(), "value1")
	assert.Contains(t, buf2.String(), "value1")
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	multi := NewMultiHandler(
		slog.NewJSONHandler(&buf1, nil),
		slog.NewJSONHandler(&buf2, nil),
	)

	logger := slog.New(multi.WithGroup("mygroup"))
	logger.Info("test message", slog.String("key", "value"))

	assert.Contains(t, buf1.String(), "mygroup")
	assert.Contains(t, buf2.String(), "mygroup")
}

// Redaction tests

func TestNewReplaceAttr_RedactsSensitiveFields(t *testing.T) {
	tests := []struct {
		name         string
		fieldName    string
		fieldValue   string
		shouldRedact bool
	}{
		{"password", "password", "secret123", true},
		{"token", "token", "my-secret-token", true},
		{"api_key", "api_key", "api-key-value", true},
		{"authorization header", "authorization", "Bearer token123", true},
		{"taxpayer ID field", "taxpayer_id", "12345678901", true},
		{"camel-case taxpayer ID", "taxpayerId", "12345678901", true},
		{"cpf alias", "cpf", "12345678901", true},
		{"secret prefix", "secret_config", "sensitive-data", true},
		{"private prefix", "privateKey", "private-key-data", true},
		{"plain username", "username", "maria.silva", false},
		{"plain message field", "note", "nothing sensitive here", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: NewReplaceAttr()})

			slog.New(handler).Info("test", slog.String(tt.fieldName, tt.fieldValue))

			output := buf.String()
			if tt.shouldRedact {
				assert.NotContains(t, output, tt.fieldValue, "sensitive value must be redacted")
				assert.Contains(t, output, tt.fieldName, "field name should remain")
			} else {
				assert.Contains(t, output, tt.fieldValue)
			}
		})
	}
}

func TestNewReplaceAttr_RedactsTaxpayerIDByShape(t *testing.T) {
	// Formatted taxpayer IDs are caught by pattern even in unnamed fields.
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: NewReplaceAttr()})

	slog.New(handler).Info("test", slog.String("document", "123.456.789-01"))

	output := buf.String()
	assert.NotContains(t, output, "123.456.789-01")
	assert.Contains(t, output, "document")
}

func TestLoggerRedactionEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&Config{
		Level:   "info",
		Format:  "json",
		Service: "insquote",
		Version: "1.0.0",
	}, &buf)

	logger.Info("quote created",
		slog.String("name", "Maria Silva"),
		slog.String("taxpayer_id", "12345678901"),
	)

	output := buf.String()
	assert.Contains(t, output, "Maria Silva")
	assert.NotContains(t, output, "12345678901")
}
