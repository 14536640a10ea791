// Package api provides the REST API server for env2cc
package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/harlanmb/env2cc/pkg/engine"
	"github.com/harlanmb/env2cc/pkg/project"
	"github.com/harlanmb/env2cc/pkg/smfio"
)

// @title env2cc API
// @version 1.0
// @description API for converting project automation envelopes to MIDI CC events
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port.
func StartServer(port int, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/process", handleProcess(log))
		v1.POST("/merge", handleMerge(log))
		v1.GET("/defaults", listDefaults)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "env2cc",
	})
}

// listDefaults godoc
// @Summary List processing defaults
// @Description Returns the default base CC, target track name and PPQ resolution
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/defaults [get]
func listDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"baseCC":          engine.DefaultBaseCC,
		"targetTrack":     engine.DefaultTargetTrack,
		"ticksPerQuarter": project.DefaultTicksPerQuarter,
	})
}

// handleProcess godoc
// @Summary Map envelopes to CC and merge
// @Description Upload a project YAML and receive the target track's merged MIDI item as a .mid file
// @Tags process
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param file formData file true "Project YAML file"
// @Param base_cc query int false "First CC controller number (default: 16)"
// @Param target query string false "Destination track name (default: Target)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/process [post]
func handleProcess(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := readProject(c)
		if !ok {
			return
		}

		opts, ok := readOptions(c)
		if !ok {
			return
		}

		report, err := engine.Run(p, opts)
		if err != nil {
			log.Warn("processing failed", zap.Error(err))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		log.Info("project processed",
			zap.Int("items", report.ItemsCreated),
			zap.Int("events", report.EventsInserted))

		data, err := smfio.ExportTrack(p, opts.TargetTrack)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		name := p.Name
		if name == "" {
			name = "project"
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.mid", name))
		c.Data(http.StatusOK, "audio/midi", data)
	}
}

// handleMerge godoc
// @Summary Merge MIDI items on the target track
// @Description Upload a project YAML, merge the target track's MIDI items, and receive the updated project YAML
// @Tags process
// @Accept multipart/form-data
// @Produce application/x-yaml
// @Param file formData file true "Project YAML file"
// @Param target query string false "Destination track name (default: Target)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/merge [post]
func handleMerge(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := readProject(c)
		if !ok {
			return
		}

		target := c.DefaultQuery("target", engine.DefaultTargetTrack)
		merged, err := engine.Merge(p, target)
		if err != nil {
			log.Warn("merge failed", zap.Error(err))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		log.Info("items merged",
			zap.String("track", target),
			zap.Float64("start", merged.Position),
			zap.Float64("end", merged.End()))

		data, err := p.Save()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/x-yaml", data)
	}
}

func readProject(c *gin.Context) (*project.Project, bool) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return nil, false
	}

	p, err := project.Load(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return p, true
}

func readOptions(c *gin.Context) (engine.Options, bool) {
	opts := engine.DefaultOptions()
	opts.TargetTrack = c.DefaultQuery("target", engine.DefaultTargetTrack)

	if raw := c.Query("base_cc"); raw != "" {
		base, err := strconv.ParseUint(raw, 10, 8)
		if err != nil || base > 127 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "base_cc must be an integer in [0,127]"})
			return opts, false
		}
		opts.BaseCC = uint8(base)
	}
	return opts, true
}
