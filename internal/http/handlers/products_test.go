package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/home-accessories/backend/internal/models"
	"github.com/home-accessories/backend/internal/upload"
	"gorm.io/gorm"
)

func setupStorage(t *testing.T) *upload.Storage {
	t.Helper()
	storage, errNew := upload.NewStorage(t.TempDir())
	if errNew != nil {
		t.Fatalf("new storage: %v", errNew)
	}
	return storage
}

func productRouter(db *gorm.DB, storage *upload.Storage) *gin.Engine {
	handler := NewProductHandler(db, storage)
	router := gin.New()
	router.GET("/api/products", handler.List)
	router.POST("/api/products", handler.Create)
	router.PUT("/api/products/:id", handler.Update)
	router.DELETE("/api/products/:id", handler.Delete)
	return router
}

// multipartRequest builds a multipart form with the given fields, plus an
// image part when fileName is non-empty.
func multipartRequest(t *testing.T, method, path string, fields map[string]string, fileName string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if errField := writer.WriteField(key, value); errField != nil {
			t.Fatalf("write field %s: %v", key, errField)
		}
	}
	if fileName != "" {
		part, errPart := writer.CreateFormFile("image", fileName)
		if errPart != nil {
			t.Fatalf("create file part: %v", errPart)
		}
		if _, errWrite := part.Write([]byte("image-bytes")); errWrite != nil {
			t.Fatalf("write file part: %v", errWrite)
		}
	}
	if errClose := writer.Close(); errClose != nil {
		t.Fatalf("close writer: %v", errClose)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeProductResponse(t *testing.T, w *httptest.ResponseRecorder) models.Product {
	t.Helper()
	var resp struct {
		Message string         `json:"message"`
		Product models.Product `json:"product"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	return resp.Product
}

func TestCreateProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	req := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
		"name":          "  Brass Handle  ",
		"description":   "Solid brass door handle",
		"price":         "49.99",
		"category":      "Handles",
		"keyFeatures":   `["Solid brass","Easy install"]`,
		"material":      "Brass",
		"compatibility": "Standard doors",
		"bestFor":       "Front doors",
		"warranty":      "2 years",
	}, "handle.jpg")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	product := decodeProductResponse(t, w)
	if product.Name != "Brass Handle" {
		t.Fatalf("expected trimmed name, got %q", product.Name)
	}
	if product.Description != "Solid brass door handle" {
		t.Fatalf("unexpected description %q", product.Description)
	}
	if product.Price != 49.99 {
		t.Fatalf("expected price 49.99, got %v", product.Price)
	}
	if product.Category != "Handles" {
		t.Fatalf("unexpected category %q", product.Category)
	}
	if len(product.KeyFeatures) != 2 || product.KeyFeatures[0] != "Solid brass" || product.KeyFeatures[1] != "Easy install" {
		t.Fatalf("unexpected key features %v", product.KeyFeatures)
	}
	if !strings.HasPrefix(product.Image, "/uploads/") || !strings.HasSuffix(product.Image, ".jpg") {
		t.Fatalf("unexpected image path %q", product.Image)
	}

	stored := filepath.Join(storage.Dir(), strings.TrimPrefix(product.Image, "/uploads/"))
	if _, errStat := os.Stat(stored); errStat != nil {
		t.Fatalf("expected stored image file: %v", errStat)
	}
}

func TestCreateProductMissingRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	cases := []struct {
		name     string
		fields   map[string]string
		fileName string
	}{
		{"no name", map[string]string{"description": "d"}, "a.png"},
		{"no description", map[string]string{"name": "n"}, "a.png"},
		{"no file", map[string]string{"name": "n", "description": "d"}, ""},
	}
	for _, tc := range cases {
		req := multipartRequest(t, http.MethodPost, "/api/products", tc.fields, tc.fileName)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", tc.name, w.Code)
		}
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no persisted products, got %d", count)
	}
}

func TestCreateProductDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	for _, price := range []string{"", "abc", "-5", "NaN"} {
		req := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
			"name":        "Hinge",
			"description": "Steel hinge",
			"price":       price,
		}, "hinge.png")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("price %q: expected 201, got %d", price, w.Code)
		}
		product := decodeProductResponse(t, w)
		if product.Price != 0 {
			t.Fatalf("price %q: expected fallback 0, got %v", price, product.Price)
		}
		if product.Category != models.DefaultCategory {
			t.Fatalf("expected default category, got %q", product.Category)
		}
	}
}

func TestCreateProductKeyFeaturesPlainTextFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	req := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
		"name":        "Lock",
		"description": "Deadbolt lock",
		"keyFeatures": "Pick resistant\n\n  Weatherproof  \nANSI Grade 1\n",
	}, "lock.png")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	product := decodeProductResponse(t, w)
	want := []string{"Pick resistant", "Weatherproof", "ANSI Grade 1"}
	if len(product.KeyFeatures) != len(want) {
		t.Fatalf("expected %d features, got %v", len(want), product.KeyFeatures)
	}
	for i, feature := range want {
		if product.KeyFeatures[i] != feature {
			t.Fatalf("feature %d: expected %q, got %q", i, feature, product.KeyFeatures[i])
		}
	}
}

func TestListProductsNewestFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"A", "B", "C"} {
		product := models.Product{
			Name:        name,
			Description: "d",
			Image:       "/uploads/x.png",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if errCreate := db.Create(&product).Error; errCreate != nil {
			t.Fatalf("seed product %s: %v", name, errCreate)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var products []models.Product
	if errDecode := json.Unmarshal(w.Body.Bytes(), &products); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	got := make([]string, 0, len(products))
	for _, product := range products {
		got = append(got, product.Name)
	}
	if fmt.Sprint(got) != "[C B A]" {
		t.Fatalf("expected [C B A], got %v", got)
	}
}

func TestListProductsTieBreakByInsertionOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	same := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, name := range []string{"first", "second", "third"} {
		product := models.Product{Name: name, Description: "d", Image: "/uploads/x.png", CreatedAt: same}
		if errCreate := db.Create(&product).Error; errCreate != nil {
			t.Fatalf("seed product %s: %v", name, errCreate)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var products []models.Product
	if errDecode := json.Unmarshal(w.Body.Bytes(), &products); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if len(products) != 3 || products[0].Name != "third" || products[2].Name != "first" {
		names := make([]string, 0, len(products))
		for _, product := range products {
			names = append(names, product.Name)
		}
		t.Fatalf("expected [third second first], got %v", names)
	}
}

func TestUpdateProductKeepsImageWithoutNewFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	seeded := models.Product{Name: "Old", Description: "old", Image: "/uploads/old.png", Price: 10, Category: "Locks"}
	if errCreate := db.Create(&seeded).Error; errCreate != nil {
		t.Fatalf("seed product: %v", errCreate)
	}

	req := multipartRequest(t, http.MethodPut, fmt.Sprintf("/api/products/%d", seeded.ID), map[string]string{
		"name":        "New name",
		"description": "new description",
		"price":       "25",
	}, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	product := decodeProductResponse(t, w)
	if product.Image != "/uploads/old.png" {
		t.Fatalf("expected prior image kept, got %q", product.Image)
	}
	if product.Name != "New name" || product.Price != 25 {
		t.Fatalf("expected fields replaced, got %+v", product)
	}
	// Optional fields not sent are replaced wholesale, not merged.
	if product.Category != models.DefaultCategory {
		t.Fatalf("expected category reset to default, got %q", product.Category)
	}
}

func TestUpdateProductReplacesImageAndKeepsOldFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	oldFile := filepath.Join(storage.Dir(), "old.png")
	if errWrite := os.WriteFile(oldFile, []byte("old-bytes"), 0644); errWrite != nil {
		t.Fatalf("write old file: %v", errWrite)
	}
	seeded := models.Product{Name: "Old", Description: "old", Image: "/uploads/old.png"}
	if errCreate := db.Create(&seeded).Error; errCreate != nil {
		t.Fatalf("seed product: %v", errCreate)
	}

	req := multipartRequest(t, http.MethodPut, fmt.Sprintf("/api/products/%d", seeded.ID), map[string]string{
		"name":        "Updated",
		"description": "updated",
	}, "new.png")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	product := decodeProductResponse(t, w)
	if product.Image == "/uploads/old.png" {
		t.Fatal("expected image reference replaced")
	}
	// The superseded file is left on disk.
	if _, errStat := os.Stat(oldFile); errStat != nil {
		t.Fatalf("expected old file retained: %v", errStat)
	}
}

func TestUpdateProductValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	req := multipartRequest(t, http.MethodPut, "/api/products/1", map[string]string{"name": "only name"}, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	for _, id := range []string{"9999", "not-a-number"} {
		req := multipartRequest(t, http.MethodPut, "/api/products/"+id, map[string]string{
			"name":        "n",
			"description": "d",
		}, "")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("id %q: expected 404, got %d", id, w.Code)
		}
	}
}

func TestDeleteProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupDB(t)
	storage := setupStorage(t)
	router := productRouter(db, storage)

	seeded := models.Product{Name: "Doomed", Description: "d", Image: "/uploads/x.png"}
	if errCreate := db.Create(&seeded).Error; errCreate != nil {
		t.Fatalf("seed product: %v", errCreate)
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/products/%d", seeded.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected empty catalog, got %d", count)
	}

	// Deleting again is a not-found no-op.
	again := httptest.NewRecorder()
	router.ServeHTTP(again, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/products/%d", seeded.ID), nil))
	if again.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", again.Code)
	}
}
