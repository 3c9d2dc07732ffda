package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rescue_connect/internal/config"
	"rescue_connect/internal/controllers"
	"rescue_connect/internal/expiry"
	"rescue_connect/internal/middleware"
	"rescue_connect/internal/models"
	"rescue_connect/internal/routes"
	"rescue_connect/internal/storage"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

// setupTest wires a fresh sqlite-backed database, upload store and router.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Donation{}, &models.FoodItem{}, &models.Receive{}); err != nil {
		t.Fatalf("auto-migration failed: %v", err)
	}
	config.DB = db

	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create upload store: %v", err)
	}
	controllers.SetUploads(store)

	controllers.SetClock(expiry.RealClock{})
	t.Cleanup(func() {
		controllers.SetClock(expiry.RealClock{})
	})

	return routes.SetupRouter(store)
}

// seedUser inserts an account directly and returns it with a valid token.
func seedUser(t *testing.T, username, role string) (models.User, string) {
	t.Helper()

	user := models.User{
		Username:    username,
		Email:       username + "@example.com",
		Mobile:      "0700000000",
		Password:    "not-a-real-hash",
		Role:        role,
		AccessLevel: "general",
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("seeding user %q: %v", username, err)
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return user, token
}

// formFile is one file attachment for a multipart request.
type formFile struct {
	field   string
	name    string
	content []byte
}

// multipartRequest builds a multipart/form-data request the way the React
// client submits donation and signup forms.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, files []formFile, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, val := range fields {
		if err := w.WriteField(key, val); err != nil {
			t.Fatalf("writing field %q: %v", key, err)
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("creating form file %q: %v", f.field, err)
		}
		if _, err := fw.Write(f.content); err != nil {
			t.Fatalf("writing form file %q: %v", f.field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing form: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// jsonRequest builds a JSON request (login uses JSON, not multipart).
func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func do(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}
