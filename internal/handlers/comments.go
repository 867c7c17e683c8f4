package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campus-pulse/backend/internal/models"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// List returns a ping's comments oldest-first with author usernames.
func (h *CommentHandler) List(c *gin.Context) {
	pingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ping not found"})
		return
	}

	var comments []models.Comment
	if err := h.db.Preload("User").
		Where("ping_id = ?", pingID).
		Order("created_at asc").
		Find(&comments).Error; err != nil {
		internalError(c, "fetch comments", err)
		return
	}

	responses := make([]gin.H, 0, len(comments))
	for _, comment := range comments {
		row := gin.H{
			"id":         comment.ID,
			"user_id":    comment.UserID,
			"ping_id":    comment.PingID,
			"username":   comment.User.Username,
			"content":    comment.Content,
			"created_at": comment.CreatedAt,
		}
		if len(comment.ImageData) > 0 {
			row["image_base64"] = base64.StdEncoding.EncodeToString(comment.ImageData)
		}
		responses = append(responses, row)
	}

	c.JSON(http.StatusOK, responses)
}

// Create adds a comment to an existing ping, with an optional image run
// through the same compression pipeline as pings.
func (h *CommentHandler) Create(c *gin.Context) {
	claims, ok := middlewareClaims(c)
	if !ok {
		return
	}

	pingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ping not found"})
		return
	}

	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Comment content required"})
		return
	}

	var ping models.Ping
	if err := h.db.First(&ping, pingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Ping not found"})
		} else {
			internalError(c, "fetch ping", err)
		}
		return
	}

	image, err := processUpload(c)
	if err != nil {
		uploadError(c, err)
		return
	}

	comment := models.Comment{
		UserID:    claims.UserID,
		PingID:    ping.ID,
		Content:   content,
		ImageData: image,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		internalError(c, "create comment", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added"})
}

// Update edits a comment; the owner or an admin only.
func (h *CommentHandler) Update(c *gin.Context) {
	claims, ok := middlewareClaims(c)
	if !ok {
		return
	}

	comment, ok := h.findComment(c)
	if !ok {
		return
	}

	if !canModify(claims, comment.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Comment content required"})
		return
	}

	image, err := processUpload(c)
	if err != nil {
		uploadError(c, err)
		return
	}

	updates := map[string]interface{}{"content": content}
	if image != nil {
		updates["image_data"] = image
	}

	if err := h.db.Model(&comment).Updates(updates).Error; err != nil {
		internalError(c, "update comment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment updated"})
}

// Delete removes a comment; the owner or an admin only.
func (h *CommentHandler) Delete(c *gin.Context) {
	claims, ok := middlewareClaims(c)
	if !ok {
		return
	}

	comment, ok := h.findComment(c)
	if !ok {
		return
	}

	if !canModify(claims, comment.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	if err := h.db.Delete(&comment).Error; err != nil {
		internalError(c, "delete comment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *CommentHandler) findComment(c *gin.Context) (models.Comment, bool) {
	var comment models.Comment

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return comment, false
	}

	if err := h.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		} else {
			internalError(c, "fetch comment", err)
		}
		return comment, false
	}
	return comment, true
}
