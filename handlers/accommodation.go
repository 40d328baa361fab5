package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accommodationRepo "stayadmin/repository/accommodation"
	"stayadmin/services/storage"
)

// AccommodationHandler exposes the accommodation CRUD views and the image
// upload used by the listing form.
type AccommodationHandler struct {
	Repo    accommodationRepo.Repository
	Storage storage.StorageService
}

func NewAccommodationHandler(repo accommodationRepo.Repository, store storage.StorageService) *AccommodationHandler {
	return &AccommodationHandler{Repo: repo, Storage: store}
}

func (h *AccommodationHandler) List(c *gin.Context) {
	accommodations, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch accommodations", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, accommodations)
}

func (h *AccommodationHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid accommodation id"})
		return
	}
	acc, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch accommodation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (h *AccommodationHandler) Create(c *gin.Context) {
	var input accommodationRepo.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Repo.Create(c.Request.Context(), input); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create accommodation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "accommodation created"})
}

func (h *AccommodationHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid accommodation id"})
		return
	}
	var input accommodationRepo.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Repo.Update(c.Request.Context(), id, input); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update accommodation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "accommodation updated"})
}

// UploadImage receives a picture from the listing form, pushes it to the
// storage service, and returns the URL to store on the accommodation.
func (h *AccommodationHandler) UploadImage(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	defer os.Remove(tmpPath)

	url, err := h.Storage.UploadImage(c.Request.Context(), tmpPath)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to upload image", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
