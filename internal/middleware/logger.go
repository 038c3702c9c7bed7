package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// responseWriter is a custom response writer to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// LoggerConfig holds configuration for the logger middleware
type LoggerConfig struct {
	Format string // "json" or "pretty"
	Level  string // "debug", "info", "warn", "error"
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp    string              `json:"timestamp"`
	Method       string              `json:"method"`
	Path         string              `json:"path"`
	StatusCode   int                 `json:"status_code"`
	Latency      string              `json:"latency"`
	ClientIP     string              `json:"client_ip"`
	QueryParams  map[string][]string `json:"query_params,omitempty"`
	ResponseBody interface{}         `json:"response_body,omitempty"`
	Error        string              `json:"error,omitempty"`
}

// RequestResponseLogger creates a middleware that logs all API requests and
// responses. Request bodies are not captured: uploads are binary multipart
// payloads and would only produce noise.
func RequestResponseLogger(config LoggerConfig) gin.HandlerFunc {
	debug := config.Level == "debug"

	return func(c *gin.Context) {
		startTime := time.Now()

		// Capture the response only when debug logging is on
		var responseBodyWriter *responseWriter
		if debug {
			responseBodyWriter = &responseWriter{
				ResponseWriter: c.Writer,
				body:           bytes.NewBufferString(""),
			}
			c.Writer = responseBodyWriter
		}

		c.Next()

		latency := time.Since(startTime)

		entry := LogEntry{
			Timestamp:   time.Now().Format(time.RFC3339),
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			StatusCode:  c.Writer.Status(),
			Latency:     latency.String(),
			ClientIP:    c.ClientIP(),
			QueryParams: c.Request.URL.Query(),
		}

		if debug && responseBodyWriter != nil {
			entry.ResponseBody = parseBody(responseBodyWriter.body.Bytes())
		}

		if len(c.Errors) > 0 {
			entry.Error = c.Errors.String()
		}

		if config.Format == "pretty" {
			printPrettyLog(entry)
		} else {
			printJSONLog(entry)
		}
	}
}

// parseBody decodes a JSON response body for logging, truncating anything else
func parseBody(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}

	var jsonBody interface{}
	if err := json.Unmarshal(body, &jsonBody); err != nil {
		bodyStr := string(body)
		if len(bodyStr) > 1000 {
			bodyStr = bodyStr[:1000] + "... (truncated)"
		}
		return bodyStr
	}
	return jsonBody
}

// printJSONLog outputs the log entry as JSON
func printJSONLog(entry LogEntry) {
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		fmt.Printf(`{"error": "failed to marshal log entry: %v"}%s`, err, "\n")
		return
	}
	fmt.Println(string(jsonBytes))
}

// printPrettyLog outputs the log entry in a human-readable format
func printPrettyLog(entry LogEntry) {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("%s %s %s\n", entry.Timestamp, entry.Method, entry.Path)
	fmt.Printf("Status: %d | Latency: %s | Client IP: %s\n", entry.StatusCode, entry.Latency, entry.ClientIP)

	if len(entry.QueryParams) > 0 {
		fmt.Println("Query Parameters:")
		for key, values := range entry.QueryParams {
			fmt.Printf("  %s: %v\n", key, values)
		}
	}

	if entry.ResponseBody != nil {
		fmt.Println("Response Body:")
		jsonBytes, err := json.MarshalIndent(entry.ResponseBody, "  ", "  ")
		if err != nil {
			fmt.Printf("  %v\n", entry.ResponseBody)
		} else {
			fmt.Printf("  %s\n", string(jsonBytes))
		}
	}

	if entry.Error != "" {
		fmt.Printf("Error: %s\n", entry.Error)
	}

	fmt.Println(strings.Repeat("=", 80))
}
