package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hms/backend/internal/infrastructure/config"
	"github.com/hms/backend/internal/infrastructure/logger"
	"github.com/hms/backend/internal/infrastructure/storage"
	"github.com/hms/backend/internal/interfaces/http/dto"
	"github.com/hms/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// The upload server runs separately from the API server so large multipart
// bodies never tie up API worker connections. It accepts profile images and
// report attachments and hands back the public path the API stores.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting HMS Upload Server",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.Upload.Port),
		zap.String("driver", cfg.Storage.Driver),
	)

	store, err := storage.NewImageStore(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to create image store", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// Multipart framing adds overhead beyond the file itself
	engine.Use(middleware.BodyLimit(cfg.Upload.MaxFileSize + 1<<20))

	h := &uploadHandler{store: store, upload: cfg.Upload}
	engine.POST("/api/upload", h.Upload)
	engine.DELETE("/api/images/:filename", h.Delete)
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The local driver serves its own files; S3 serves directly from the bucket
	if cfg.Storage.Driver == "local" {
		engine.Static(cfg.Storage.PublicURL, cfg.Storage.LocalDir)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.Upload.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Upload server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start upload server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down upload server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Upload server forced to shutdown", zap.Error(err))
	}

	log.Info("Upload server exited gracefully")
}

type uploadHandler struct {
	store  storage.ImageStore
	upload config.UploadConfig
}

// UploadResponse is returned after a successful upload
type UploadResponse struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// Upload accepts a multipart "image" field, validates its size and
// extension, and stores it under a generated name
func (h *uploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, "Multipart field 'image' is required"))
		return
	}

	if fileHeader.Size > h.upload.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(dto.ErrCodeTooLarge, "File exceeds the maximum allowed size"))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !h.extAllowed(ext) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, "File type "+ext+" is not allowed"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "Failed to read uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.upload.MaxFileSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "Failed to read uploaded file"))
		return
	}
	if int64(len(data)) > h.upload.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(dto.ErrCodeTooLarge, "File exceeds the maximum allowed size"))
		return
	}

	filename := uuid.NewString() + ext
	contentType := fileHeader.Header.Get("Content-Type")

	path, err := h.store.Save(c.Request.Context(), filename, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "Failed to store file"))
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(UploadResponse{
		Filename: filename,
		Path:     path,
		Size:     int64(len(data)),
	}))
}

// Delete removes a stored file by its generated filename
func (h *uploadHandler) Delete(c *gin.Context) {
	filename := c.Param("filename")

	if err := h.store.Remove(c.Request.Context(), filename); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "File not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "Failed to remove file"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *uploadHandler) extAllowed(ext string) bool {
	for _, allowed := range h.upload.AllowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}
