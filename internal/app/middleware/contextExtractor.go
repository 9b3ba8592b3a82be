package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

// LogDetailsKey carries the request audit record through the context; the
// logger reads it back to stamp request_id on every entry.
const LogDetailsKey contextKey = "logDetails"

// AttachRequestDetails assigns each request an id, stores the audit record in
// the request context and prints the completed record as one JSON line after
// the handler ran. This line is the access log; it stays raw JSON because the
// zap logger itself resolves LogDetailsKey from this package.
func AttachRequestDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		details := newRequestDetails(c)

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), LogDetailsKey, details))
		c.Next()

		details.Status = c.Writer.Status()
		details.ResponseTime = time.Now().UTC().Format(time.RFC3339Nano)
		details.ResponseParams = map[string]interface{}{
			"headers": extractHeaders(c.Writer.Header()),
			"body":    map[string]interface{}{},
		}

		line, err := json.Marshal(details)
		if err != nil {
			log.Printf("Error encoding log message to JSON: %v", err)
			return
		}
		fmt.Println(string(line))
	}
}

func newRequestDetails(c *gin.Context) models.RequestDetails {
	return models.RequestDetails{
		RequestID:     uuid.New().String(),
		IP:            c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
		HTTPMethod:    c.Request.Method,
		Path:          c.Request.URL.String(),
		OperationName: operationName(c.HandlerName()),
		RequestTime:   time.Now().UTC().Format(time.RFC3339Nano),
		RequestParams: map[string]interface{}{
			"headers": extractHeaders(c.Request.Header),
			"payload": map[string]interface{}{},
			"query":   c.Request.URL.Query(),
		},
	}
}

func extractHeaders(headers map[string][]string) map[string]interface{} {
	result := make(map[string]interface{})
	for key, values := range headers {
		result[key] = values[0]
	}
	return maskSensitiveData(result, consts.SensitiveKeys)
}

func maskSensitiveData(data map[string]interface{}, keysToMask []string) map[string]interface{} {
	masked := make(map[string]interface{}, len(data))
	for key, value := range data {
		if slices.Contains(keysToMask, key) {
			masked[key] = "*****"
			continue
		}
		if nested, ok := value.(map[string]interface{}); ok {
			masked[key] = maskSensitiveData(nested, keysToMask)
			continue
		}
		masked[key] = value
	}
	return masked
}

// operationName shortens gin's fully qualified handler name to the module and
// package segment.
func operationName(handlerName string) string {
	segments := strings.Split(handlerName, "/")
	if len(segments) > 2 {
		return strings.Join(segments[:2], "/")
	}
	return handlerName
}
