package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campus-pulse/backend/internal/auth"
	"github.com/campus-pulse/backend/internal/models"
)

type AuthHandler struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthHandler(db *gorm.DB, jwtSecret string) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}

	var existing models.User
	if err := h.db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username taken"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, "check username", err)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		internalError(c, "hash password", err)
		return
	}

	user := models.User{Username: input.Username, Password: hash, Role: role}
	if err := h.db.Create(&user).Error; err != nil {
		// The unique index can still fire under concurrent registration.
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username taken"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login verifies credentials and issues a token. Unknown usernames and wrong
// passwords produce the identical response so accounts cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password required"})
		return
	}

	var user models.User
	err := h.db.Where("username = ?", input.Username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, "fetch user", err)
		return
	}
	if err != nil {
		user.Password = "" // forces the dummy comparison
	}

	if !auth.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	token, err := auth.IssueToken(h.jwtSecret, user.ID, user.Username, user.Role)
	if err != nil {
		internalError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}
