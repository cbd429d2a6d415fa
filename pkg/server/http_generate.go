package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/export"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/generator"
	"github.com/kumarabd/ingestion-plane/loggen/pkg/service"
)

const (
	FormatJSON = "json"
	FormatOTLP = "otlp"
)

const (
	errInvalidType   = "Invalid log type. Use 'payment' or 'pcf'."
	errInvalidSeed   = "Invalid seed. Use an unsigned integer."
	errInvalidFormat = "Invalid format. Use 'json' or 'otlp'."
)

// generateHandler serves GET /generate-logs?count=<int>&type=<payment|pcf>
func (s *HTTP) generateHandler(c *gin.Context) {
	defaults := s.service.Config()

	// type is checked first so the error does not depend on count
	logType := c.DefaultQuery("type", defaults.DefaultType)
	if _, err := generator.Get(logType); err != nil {
		s.rejectRequest(c, "invalid_type", err, errInvalidType)
		return
	}

	// a count that is not a whole number falls back to the default
	count := defaults.DefaultCount
	if raw, ok := c.GetQuery("count"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			count = n
		}
	}

	var seed *uint64
	if raw, ok := c.GetQuery("seed"); ok {
		v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			s.rejectRequest(c, "invalid_seed", err, errInvalidSeed)
			return
		}
		seed = &v
	}

	format := c.DefaultQuery("format", FormatJSON)
	if format != FormatJSON && format != FormatOTLP {
		s.rejectRequest(c, "invalid_format", fmt.Errorf("unknown format %q", format), errInvalidFormat)
		return
	}

	batch, err := s.service.Generate(c.Request.Context(), service.Request{
		Type:  logType,
		Count: count,
		Seed:  seed,
	})
	if err != nil {
		_ = c.Error(err)
		switch {
		case errors.Is(err, generator.ErrUnknownType):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errInvalidType})
		case errors.Is(err, service.ErrCountTooLarge):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Count exceeds maximum of %d.", defaults.MaxCount)})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		}
		return
	}

	if format == FormatOTLP {
		data, err := export.MarshalJSON(batch.Records)
		if err != nil {
			s.log.Error().Err(err).Msg("Failed to encode OTLP response")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "encoding failed"})
			return
		}
		c.Data(http.StatusOK, "application/json", data)
		return
	}

	c.JSON(http.StatusOK, batch.Records)
}

// rejectRequest answers 400 for a parameter the handler could not accept
func (s *HTTP) rejectRequest(c *gin.Context, reason string, err error, message string) {
	if s.metric != nil {
		s.metric.IncGenerateRejectedTotal(reason)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
