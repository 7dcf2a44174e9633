// Package api exposes the VCF processing pipeline over HTTP.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/genomic-vcf-service/internal/domain"
	"github.com/genomic-vcf-service/internal/middleware"
	"github.com/genomic-vcf-service/internal/service"
)

// ProcessingResponse is the success envelope returned by the processing
// endpoints.
type ProcessingResponse struct {
	Success       bool                   `json:"success"`
	Message       string                 `json:"message"`
	TotalVariants int                    `json:"total_variants"`
	TopVariants   []domain.VariantResult `json:"top_variants"`
	Summary       domain.Summary         `json:"summary"`
}

// HealthCheck probes one backing dependency for the health endpoint. Check
// may return extra details to merge into the dependency's health entry.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) (map[string]any, error)
}

// Server represents the HTTP server
type Server struct {
	configManager domain.ConfigManager
	logger        *logrus.Logger
	pipeline      *service.Pipeline
	validator     *service.FileValidator
	healthChecks  []HealthCheck
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(configManager domain.ConfigManager, logger *logrus.Logger, pipeline *service.Pipeline, checks ...HealthCheck) *Server {
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(middleware.CorrelationID())
	router.Use(middleware.AuditLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(corsMiddleware())

	serverCfg := configManager.GetServerConfig()
	if serverCfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(serverCfg.RateLimit, serverCfg.RateBurst)
		router.Use(limiter.Handler())
	}

	uploadCfg := configManager.GetUploadConfig()
	router.MaxMultipartMemory = uploadCfg.MaxFileSize

	server := &Server{
		configManager: configManager,
		logger:        logger,
		pipeline:      pipeline,
		validator:     service.NewFileValidator(logger, uploadCfg.MaxFileSize),
		healthChecks:  checks,
		router:        router,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Router exposes the gin engine for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("starting server: %w", err)
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/process-vcf", s.handleProcessVCF)
		v1.POST("/process-vcf-sample", s.handleProcessSample)
		v1.GET("/classification-rules", s.handleClassificationRules)
		v1.GET("/supported-formats", s.handleSupportedFormats)
	}
}

// handleHealth handles health check requests. Each registered dependency
// probe runs with a short deadline; any failure degrades the overall status
// to 503 so load balancers stop routing to this instance.
func (s *Server) handleHealth(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK

	payload := gin.H{
		"service":   "genomic-vcf-service",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	}

	if len(s.healthChecks) > 0 {
		deps := gin.H{}
		for _, check := range s.healthChecks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			details, err := check.Check(ctx)
			cancel()

			entry := gin.H{"status": "up"}
			for k, v := range details {
				entry[k] = v
			}
			if err != nil {
				entry["status"] = "down"
				entry["error"] = err.Error()
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
			deps[check.Name] = entry
		}
		payload["dependencies"] = deps
	}

	payload["status"] = status
	c.JSON(code, payload)
}

// handleProcessVCF accepts a multipart VCF upload, validates it and runs the
// classification pipeline over its content.
func (s *Server) handleProcessVCF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrCodeUpload,
			"No file provided", "multipart form must carry a 'file' field")
		return
	}

	if err := s.validator.ValidateFilename(fileHeader.Filename); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrCodeUpload,
			"Unsupported file type", err.Error())
		return
	}
	if err := s.validator.ValidateSize(fileHeader.Size); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrCodeUpload,
			"File too large", err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer,
			"Could not read upload", err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, s.configManager.GetUploadConfig().MaxFileSize+1))
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer,
			"Could not read upload", err.Error())
		return
	}
	if int64(len(content)) > s.configManager.GetUploadConfig().MaxFileSize {
		s.respondError(c, http.StatusBadRequest, domain.ErrCodeUpload,
			"File too large", "upload exceeds configured size limit")
		return
	}

	if err := s.validator.ValidateHeader(bytes.NewReader(content)); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrCodeInputFormat,
			"Invalid VCF content", err.Error())
		return
	}

	s.processContent(c, string(content), fileHeader.Filename)
}

// handleProcessSample runs the pipeline over the bundled demonstration file.
func (s *Server) handleProcessSample(c *gin.Context) {
	samplePath := s.configManager.GetUploadConfig().SampleFilePath

	content, err := os.ReadFile(samplePath)
	if err != nil {
		s.logger.WithError(err).WithField("path", samplePath).Error("Sample VCF file unavailable")
		s.respondError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer,
			"Sample file unavailable", "the bundled sample VCF could not be read")
		return
	}

	s.processContent(c, string(content), samplePath)
}

// processContent is the shared tail of both processing endpoints.
func (s *Server) processContent(c *gin.Context, content, name string) {
	topN := s.parseLimit(c)

	result, err := s.pipeline.ClassifyBatch(c.Request.Context(), content, topN)
	if err != nil {
		if errors.Is(err, domain.ErrInputFormat) {
			s.respondError(c, http.StatusBadRequest, domain.ErrCodeInputFormat,
				"Invalid VCF content", err.Error())
			return
		}
		s.logger.WithError(err).WithField("file", name).Error("VCF processing failed")
		s.respondError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer,
			"Processing failed", "an internal error occurred while processing the file")
		return
	}

	c.JSON(http.StatusOK, ProcessingResponse{
		Success:       true,
		Message:       fmt.Sprintf("Successfully processed %d variants", result.Summary.TotalVariants),
		TotalVariants: result.Summary.TotalVariants,
		TopVariants:   result.TopVariants,
		Summary:       result.Summary,
	})
}

// handleClassificationRules returns the static rule and scoring description.
func (s *Server) handleClassificationRules(c *gin.Context) {
	c.JSON(http.StatusOK, service.DescribeRules(s.pipeline.Engine()))
}

// handleSupportedFormats returns the accepted upload formats and limits.
func (s *Server) handleSupportedFormats(c *gin.Context) {
	uploadCfg := s.configManager.GetUploadConfig()
	c.JSON(http.StatusOK, gin.H{
		"supported_formats": s.validator.SupportedFormats(),
		"max_file_size":     uploadCfg.MaxFileSize,
		"max_top_variants":  uploadCfg.MaxTopN,
	})
}

// parseLimit resolves the ?limit= query parameter, clamped to the configured
// bounds. Absent or unparseable values fall back to the default.
func (s *Server) parseLimit(c *gin.Context) int {
	uploadCfg := s.configManager.GetUploadConfig()

	raw := c.Query("limit")
	if raw == "" {
		return uploadCfg.DefaultTopN
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		s.logger.WithField("limit", raw).Debug("Ignoring invalid limit parameter")
		return uploadCfg.DefaultTopN
	}
	if limit > uploadCfg.MaxTopN {
		return uploadCfg.MaxTopN
	}
	return limit
}

// respondError writes the standardized error envelope.
func (s *Server) respondError(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, gin.H{
		"error": domain.NewServiceError(code, message, details, c.GetString("correlation_id")),
	})
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Correlation-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, X-Correlation-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
