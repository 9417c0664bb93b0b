package main

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"puresearch/bfhl-api/common/config"
	"puresearch/bfhl-api/common/models"
	_ "puresearch/bfhl-api/services/bfhl-api/docs"
)

// Server holds the dependencies of the HTTP handlers
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *Metrics
}

// NewRouter wires middleware and routes for the BFHL API
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: NewMetrics(),
	}

	router := gin.New()
	router.Use(
		requestID(),
		accessLog(logger),
		s.metrics.Middleware(),
		gin.CustomRecoveryWithWriter(io.Discard, s.recoverPanic),
	)

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", s.handleInfo)
	router.POST("/bfhl", bodyLimit(cfg.MaxBodyBytes), s.handleBFHL)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "bfhl-api",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// recoverPanic turns a panic into the generic failure envelope
func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.logger.Error("Recovered from panic",
		zap.String("request_id", getRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.NewErrorResponse(s.cfg.Identity(), msgInternal))
}
