package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gamma-omg/stock-api/internal/provider"
	"github.com/gin-gonic/gin"
)

const upstreamMessage = "upstream provider failure"

func notFoundMessage(symbol string) string {
	return fmt.Sprintf("No data found for %s", symbol)
}

func (s *Server) writeNotFound(c *gin.Context, symbol string) {
	c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(symbol)})
}

func (s *Server) writeBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// writeError maps a provider failure to 404 or 500.
func (s *Server) writeError(c *gin.Context, symbol string, err error) {
	if provider.Classify(err) == provider.KindNotFound {
		s.writeNotFound(c, symbol)
		return
	}

	s.log.Error("request failed",
		slog.String(requestIDKey, c.GetString(requestIDKey)),
		slog.String("symbol", symbol),
		slog.String("kind", provider.Classify(err).String()),
		slog.String("error", err.Error()))

	msg := err.Error()
	if s.hideErrors {
		msg = upstreamMessage
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
