package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/home-accessories/backend/internal/models"
	"github.com/home-accessories/backend/internal/upload"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductHandler handles catalog CRUD.
type ProductHandler struct {
	db      *gorm.DB
	storage *upload.Storage
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(db *gorm.DB, storage *upload.Storage) *ProductHandler {
	return &ProductHandler{db: db, storage: storage}
}

// List returns the whole catalog, newest first. Equal creation timestamps
// fall back to insertion order.
func (h *ProductHandler) List(c *gin.Context) {
	products := make([]models.Product, 0)
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC, id DESC").
		Find(&products).Error; errFind != nil {
		log.Errorf("list products failed: %v", errFind)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Create persists a new product from a multipart request. Name, description
// and the image file are required.
func (h *ProductHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	fileHeader, errFile := c.FormFile("image")
	if name == "" || description == "" || errFile != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, description, and image are required"})
		return
	}

	imagePath, errStore := h.storeImage(fileHeader)
	if errStore != nil {
		log.Errorf("store image failed: %v", errStore)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	product := models.Product{
		Name:          name,
		Description:   description,
		Image:         imagePath,
		Price:         parsePrice(c.PostForm("price")),
		Category:      parseCategory(c.PostForm("category")),
		KeyFeatures:   parseKeyFeatures(c.PostForm("keyFeatures")),
		Material:      strings.TrimSpace(c.PostForm("material")),
		Compatibility: strings.TrimSpace(c.PostForm("compatibility")),
		BestFor:       strings.TrimSpace(c.PostForm("bestFor")),
		Warranty:      strings.TrimSpace(c.PostForm("warranty")),
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&product).Error; errCreate != nil {
		log.Errorf("create product failed: %v", errCreate)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product uploaded successfully", "product": product})
}

// Update replaces a product's fields wholesale with the request values.
// The image is the one exception: it is only replaced when a new file
// arrives, and the superseded file stays on disk.
func (h *ProductHandler) Update(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	if name == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and description are required"})
		return
	}

	id, okID := parseID(c.Param("id"))
	if !okID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	var product models.Product
	if errFind := h.db.WithContext(c.Request.Context()).First(&product, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		log.Errorf("load product failed: %v", errFind)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	product.Name = name
	product.Description = description
	product.Price = parsePrice(c.PostForm("price"))
	product.Category = parseCategory(c.PostForm("category"))
	product.KeyFeatures = parseKeyFeatures(c.PostForm("keyFeatures"))
	product.Material = strings.TrimSpace(c.PostForm("material"))
	product.Compatibility = strings.TrimSpace(c.PostForm("compatibility"))
	product.BestFor = strings.TrimSpace(c.PostForm("bestFor"))
	product.Warranty = strings.TrimSpace(c.PostForm("warranty"))

	if fileHeader, errFile := c.FormFile("image"); errFile == nil {
		imagePath, errStore := h.storeImage(fileHeader)
		if errStore != nil {
			log.Errorf("store image failed: %v", errStore)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		product.Image = imagePath
	}

	if errSave := h.db.WithContext(c.Request.Context()).Save(&product).Error; errSave != nil {
		log.Errorf("update product failed: %v", errSave)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// Delete removes a catalog record. The stored image file is left behind.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, okID := parseID(c.Param("id"))
	if !okID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Delete(&models.Product{}, id)
	if result.Error != nil {
		log.Errorf("delete product failed: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// storeImage writes the uploaded file and returns its public path.
func (h *ProductHandler) storeImage(fileHeader *multipart.FileHeader) (string, error) {
	src, errOpen := fileHeader.Open()
	if errOpen != nil {
		return "", errOpen
	}
	defer func() { _ = src.Close() }()

	name, errSave := h.storage.Save(src, fileHeader.Filename)
	if errSave != nil {
		return "", errSave
	}
	return "/uploads/" + name, nil
}

// parseID parses a numeric route identifier. A non-numeric id matches no
// record and is reported as not found by the callers.
func parseID(raw string) (uint64, bool) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if errParse != nil {
		return 0, false
	}
	return id, true
}

// parsePrice coerces the submitted price to a non-negative finite number,
// falling back to 0.
func parsePrice(raw string) float64 {
	price, errParse := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if errParse != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

// parseCategory defaults an absent category to General.
func parseCategory(raw string) string {
	category := strings.TrimSpace(raw)
	if category == "" {
		return models.DefaultCategory
	}
	return category
}

// parseKeyFeatures resolves the dynamic keyFeatures input into an ordered
// string list. A JSON array of strings is taken as-is; anything else is
// treated as plain text, split on newlines with blank lines discarded.
// The plain-text fallback is deliberate: clients post both shapes.
func parseKeyFeatures(raw string) datatypes.JSONSlice[string] {
	if strings.TrimSpace(raw) == "" {
		return datatypes.JSONSlice[string]{}
	}

	var parsed []string
	if errJSON := json.Unmarshal([]byte(raw), &parsed); errJSON == nil && parsed != nil {
		return datatypes.NewJSONSlice(parsed)
	}

	features := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			features = append(features, line)
		}
	}
	return datatypes.NewJSONSlice(features)
}
