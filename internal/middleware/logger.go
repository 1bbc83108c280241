package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// sensitiveFields contains patterns for body fields that must be
// redacted. Receipt image payloads are redacted too; a base64 photo in
// a log line is pure noise.
var sensitiveFields = []string{
	"password",
	"token",
	"api_key",
	"apikey",
	"api-key",
	"secret",
	"authorization",
	"bearer",
	"credential",
	"cookie",
	"image",
}

// sensitiveHeaderPatterns contains regex patterns for sensitive headers.
var sensitiveHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)cookie`),
}

// responseWriter captures the response body as it is written.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// maxLoggedBody bounds how much of a body makes it into a log line.
const maxLoggedBody = 1000

// RequestResponseLogger logs every API request and response through
// slog, with sensitive values redacted.
func RequestResponseLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		responseBodyWriter := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBufferString(""),
		}
		c.Writer = responseBodyWriter

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		}

		if len(requestBody) > 0 {
			attrs = append(attrs, "request_body", redactBody(requestBody))
		}
		if status >= 400 && responseBodyWriter.body.Len() > 0 {
			attrs = append(attrs, "response_body", redactBody(responseBodyWriter.body.Bytes()))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		if header := redactHeaders(c.Request.Header); len(header) > 0 {
			attrs = append(attrs, "headers", header)
		}

		switch {
		case status >= 500:
			logger.Error("http request", attrs...)
		case status >= 400:
			logger.Warn("http request", attrs...)
		default:
			logger.Info("http request", attrs...)
		}
	}
}

// redactHeaders redacts sensitive headers.
func redactHeaders(headers map[string][]string) map[string]string {
	redacted := make(map[string]string, len(headers))
	for key, values := range headers {
		if isSensitiveHeader(key) {
			redacted[key] = "[REDACTED]"
		} else {
			redacted[key] = strings.Join(values, ", ")
		}
	}
	return redacted
}

func isSensitiveHeader(headerName string) bool {
	for _, pattern := range sensitiveHeaderPatterns {
		if pattern.MatchString(headerName) {
			return true
		}
	}
	return false
}

// redactBody parses a JSON body and redacts sensitive fields. Non-JSON
// bodies are truncated to a short prefix.
func redactBody(body []byte) any {
	var jsonBody any
	if err := json.Unmarshal(body, &jsonBody); err != nil {
		bodyStr := string(body)
		if len(bodyStr) > maxLoggedBody {
			bodyStr = bodyStr[:maxLoggedBody] + "... (truncated)"
		}
		return bodyStr
	}

	redactSensitiveFields(jsonBody)
	return jsonBody
}

// redactSensitiveFields recursively redacts sensitive fields in JSON
// data.
func redactSensitiveFields(data any) {
	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			if isSensitiveField(key) {
				v[key] = "[REDACTED]"
			} else {
				redactSensitiveFields(value)
			}
		}
	case []any:
		for _, item := range v {
			redactSensitiveFields(item)
		}
	}
}

func isSensitiveField(fieldName string) bool {
	lowerField := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(lowerField, sensitive) {
			return true
		}
	}
	return false
}
