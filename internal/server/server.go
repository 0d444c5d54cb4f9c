package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gamma-omg/stock-api/internal/config"
	"github.com/gamma-omg/stock-api/internal/provider"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 100
	healthMessage       = "AI Trading Simulator Backend is running"
	chartWidth          = 1024
	chartHeight         = 768
)

// Server exposes provider data and indicators over a read-only JSON API.
type Server struct {
	log          *slog.Logger
	provider     provider.Provider
	symbols      map[string][]string
	historyLimit int
	hideErrors   bool
	router       *gin.Engine
}

func NewServer(log *slog.Logger, p provider.Provider, cfg config.Server, symbols map[string][]string) *Server {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"Content-Length", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	s := &Server{
		log:          log,
		provider:     p,
		symbols:      symbols,
		historyLimit: limit,
		hideErrors:   cfg.HideErrors,
		router:       router,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/stocks", s.stocks)
	}

	stock := api.Group("/stock/:symbol")
	{
		stock.GET("", s.history)
		stock.GET("/latest", s.latest)
		stock.GET("/info", s.info)
		stock.GET("/technical", s.technical)
		stock.GET("/chart", s.chart)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer wraps s in an http.Server configured with the listen address
// and timeouts from cfg.
func (s *Server) HTTPServer(cfg config.Server) *http.Server {
	return &http.Server{
		Addr:           cfg.Addr,
		Handler:        s,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
