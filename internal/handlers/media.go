package handlers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vinishch/review-tracker/pkg/response"
)

// maxUploadBytes caps a single media upload at 5 MB.
const maxUploadBytes = 5 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// MediaHandler stores screenshot/invoice uploads on local disk and serves
// them back under /media.
type MediaHandler struct {
	dir string
}

func NewMediaHandler(dir string) *MediaHandler {
	return &MediaHandler{dir: dir}
}

// Upload stores one file from the multipart "file" field and returns its
// public URL
// POST /api/media
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file field")
		return
	}
	if file.Size > maxUploadBytes {
		response.BadRequest(c, "file too large, limit is 5MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		response.BadRequest(c, "unsupported file type: "+ext)
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, name)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, gin.H{
		"filename": name,
		"url":      "/media/" + name,
	})
}

// Delete removes a stored file by name
// DELETE /api/media/:filename
func (h *MediaHandler) Delete(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))
	if name == "." || name == "/" || name == "" {
		response.BadRequest(c, "invalid filename")
		return
	}

	path := filepath.Join(h.dir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c, "file not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}
	response.NoContent(c)
}
