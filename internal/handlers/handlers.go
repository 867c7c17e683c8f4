package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campus-pulse/backend/internal/auth"
	"github.com/campus-pulse/backend/internal/media"
	"github.com/campus-pulse/backend/internal/middleware"
	"github.com/campus-pulse/backend/internal/models"
)

// Handler combines all handler types.
type Handler struct {
	Auth    *AuthHandler
	Ping    *PingHandler
	Comment *CommentHandler
}

// NewHandler creates a unified handler with all sub-handlers.
func NewHandler(db *gorm.DB, jwtSecret string) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(db, jwtSecret),
		Ping:    NewPingHandler(db),
		Comment: NewCommentHandler(db),
	}
}

// ErrImageTooLarge is reported when a raw upload exceeds the cap, before any
// transform is attempted.
var ErrImageTooLarge = errors.New("image exceeds upload size limit")

// processUpload pulls the optional multipart "image" field and runs it
// through the media pipeline. A request without an attachment yields nil
// bytes and no error.
func processUpload(c *gin.Context) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// Not multipart or no file attached; the field stays absent.
		return nil, nil
	}
	if file.Size > media.MaxUploadBytes {
		return nil, ErrImageTooLarge
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, media.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > media.MaxUploadBytes {
		return nil, ErrImageTooLarge
	}

	return media.Process(raw)
}

// uploadError maps media failures to client errors; anything else is a
// storage-side failure.
func uploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image must be 5MB or smaller"})
	case errors.Is(err, media.ErrUnsupportedImage):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image processing error"})
	default:
		internalError(c, "process upload", err)
	}
}

// internalError logs the cause and emits the uniform generic response.
// Details never reach the caller.
func internalError(c *gin.Context, action string, err error) {
	log.Printf("%s: %v", action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}

// canModify is the shared ownership rule: admins may touch anything, others
// only their own rows.
func canModify(claims *auth.Claims, ownerID int) bool {
	return claims.Role == models.RoleAdmin || claims.UserID == ownerID
}

// middlewareClaims fetches the identity set by the auth middleware. Mutating
// handlers are only mounted behind it, so a miss means a wiring bug; respond
// 401 rather than panic.
func middlewareClaims(c *gin.Context) (*auth.Claims, bool) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return nil, false
	}
	return claims, true
}
