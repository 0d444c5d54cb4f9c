package server

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gamma-omg/stock-api/internal/indicator"
	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/gamma-omg/stock-api/internal/provider"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	historyPeriod   = market.Period1y
	latestPeriod    = market.Period1d
	technicalPeriod = market.Period3mo
	chartPeriod     = market.Period6mo
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Message: healthMessage})
}

func (s *Server) stocks(c *gin.Context) {
	c.JSON(http.StatusOK, s.symbols)
}

func (s *Server) history(c *gin.Context) {
	symbol := c.Param("symbol")
	period, err := market.ParsePeriod(c.DefaultQuery("period", historyPeriod.String()))
	if err != nil {
		s.writeBadRequest(c, err)
		return
	}

	var (
		bars  market.Series
		md    market.Metadata
		mdErr error
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		bars, err = s.provider.FetchHistory(ctx, symbol, period)
		return err
	})
	g.Go(func() error {
		md, mdErr = s.provider.FetchMetadata(ctx, symbol)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.writeError(c, symbol, err)
		return
	}
	if len(bars) == 0 {
		s.writeNotFound(c, symbol)
		return
	}

	switch provider.Classify(mdErr) {
	case provider.KindNotFound:
		s.log.Debug("no metadata, using defaults", slog.String("symbol", symbol))
	case provider.KindUpstream:
		s.writeError(c, symbol, fmt.Errorf("failed to fetch metadata: %w", mdErr))
		return
	}

	bars = bars.Tail(s.historyLimit)
	data := make([]barResponse, len(bars))
	for i, b := range bars {
		data[i] = newBarResponse(b)
	}

	info := newInfoResponse(symbol, md)
	c.JSON(http.StatusOK, historyResponse{
		Symbol:   symbol,
		Name:     info.Name,
		Currency: info.Currency,
		Exchange: info.Exchange,
		Sector:   info.Sector,
		Data:     data,
	})
}

func (s *Server) latest(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, ok := s.fetchBars(c, symbol, latestPeriod)
	if !ok {
		return
	}

	last, _ := bars.Last()
	c.JSON(http.StatusOK, newLatestResponse(symbol, last))
}

func (s *Server) info(c *gin.Context) {
	symbol := c.Param("symbol")
	md, err := s.provider.FetchMetadata(c.Request.Context(), symbol)
	if err != nil {
		s.writeError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, newInfoResponse(symbol, md))
}

func (s *Server) technical(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, ok := s.fetchBars(c, symbol, technicalPeriod)
	if !ok {
		return
	}

	snap, err := indicator.Calculate(bars)
	if err != nil {
		s.writeError(c, symbol, err)
		return
	}
	if snap.RSIErr != nil {
		s.log.Debug("rsi unavailable, using fallback",
			slog.String("symbol", symbol),
			slog.Float64("fallback", indicator.RSIFallback),
			slog.String("reason", snap.RSIErr.Error()))
	}

	c.JSON(http.StatusOK, newTechnicalResponse(symbol, snap))
}

func (s *Server) chart(c *gin.Context) {
	symbol := c.Param("symbol")
	period, err := market.ParsePeriod(c.DefaultQuery("period", chartPeriod.String()))
	if err != nil {
		s.writeBadRequest(c, err)
		return
	}

	bars, ok := s.fetchBars(c, symbol, period)
	if !ok {
		return
	}

	chart, err := indicator.NewIndicatorChart(symbol, bars, chartWidth, chartHeight)
	if err != nil {
		s.writeError(c, symbol, fmt.Errorf("failed to build chart: %w", err))
		return
	}

	var buf bytes.Buffer
	if _, err := chart.WriteTo(&buf); err != nil {
		s.writeError(c, symbol, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// fetchBars loads history and writes the error response itself when there is
// nothing to serve.
func (s *Server) fetchBars(c *gin.Context, symbol string, period market.Period) (market.Series, bool) {
	bars, err := s.provider.FetchHistory(c.Request.Context(), symbol, period)
	if err != nil {
		s.writeError(c, symbol, err)
		return nil, false
	}
	if len(bars) == 0 {
		s.writeNotFound(c, symbol)
		return nil, false
	}

	return bars, true
}
