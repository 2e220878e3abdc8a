package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chatwave/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 5 << 20 // 5MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores uploaded images on disk and hands back a path.
// No further file-storage design: store a path, serve a path.
type UploadHandler struct {
	uploadDir string
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/upload", h.UploadImage)
}

// UploadImage accepts a multipart image and returns its served path.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "File is required")
	}
	if file.Size > maxUploadBytes {
		return fail(c, http.StatusBadRequest, "File is too large")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return fail(c, http.StatusBadRequest, "Unsupported file type")
	}

	src, err := file.Open()
	if err != nil {
		return failStore(c, err)
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return failStore(c, err)
	}

	name := fmt.Sprintf("%d_%d%s", user.ID, time.Now().UnixNano(), ext)
	dstPath := filepath.Join(h.uploadDir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return failStore(c, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusCreated, echo.Map{"path": "/uploads/" + name})
}
