package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campus-pulse/backend/internal/middleware"
	"github.com/campus-pulse/backend/internal/testutil"
)

// newTestRouter mounts the handlers exactly as the server does, backed by an
// in-memory database.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	h := NewHandler(db, testutil.Secret)

	r := gin.New()
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.GET("/pings", h.Ping.List)
	r.GET("/pings/:id/comments", h.Comment.List)

	protected := r.Group("")
	protected.Use(middleware.RequireAuth(testutil.Secret))
	{
		protected.POST("/pings", h.Ping.Create)
		protected.PUT("/pings/:id", h.Ping.Update)
		protected.DELETE("/pings/:id", h.Ping.Delete)
		protected.POST("/pings/:id/vote", h.Ping.Vote)
		protected.POST("/pings/:id/comments", h.Comment.Create)
		protected.PUT("/comments/:id", h.Comment.Update)
		protected.DELETE("/comments/:id", h.Comment.Delete)
	}

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, token string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doMultipart(t *testing.T, r *gin.Engine, method, path string, fields map[string]string, image []byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if image != nil {
		part, err := mw.CreateFormFile("image", "upload.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}
