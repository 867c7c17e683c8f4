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

// feedLimit caps the feed at the newest rows.
const feedLimit = 50

type PingHandler struct {
	db *gorm.DB
}

func NewPingHandler(db *gorm.DB) *PingHandler {
	return &PingHandler{db: db}
}

// countVotes returns the derived vote count: rows in ping_votes with
// vote_type = 1, independent of the denormalized upvotes column.
func (h *PingHandler) countVotes(pingID int) (int64, error) {
	var votes int64
	err := h.db.Model(&models.PingVote{}).
		Where("ping_id = ? AND vote_type = ?", pingID, models.UpvoteType).
		Count(&votes).Error
	return votes, err
}

func (h *PingHandler) countComments(pingID int) (int64, error) {
	var comments int64
	err := h.db.Model(&models.Comment{}).Where("ping_id = ?", pingID).Count(&comments).Error
	return comments, err
}

// List returns the feed: active pings newest-first, capped at feedLimit,
// with author username, derived counts and base64 image payloads.
func (h *PingHandler) List(c *gin.Context) {
	var pings []models.Ping
	err := h.db.Preload("User").
		Where("is_active = ?", true).
		Order("created_at desc").
		Limit(feedLimit).
		Find(&pings).Error
	if err != nil {
		internalError(c, "fetch pings", err)
		return
	}

	responses := make([]gin.H, 0, len(pings))
	for _, ping := range pings {
		votes, err := h.countVotes(ping.ID)
		if err != nil {
			internalError(c, "count votes", err)
			return
		}
		comments, err := h.countComments(ping.ID)
		if err != nil {
			internalError(c, "count comments", err)
			return
		}

		row := gin.H{
			"id":            ping.ID,
			"user_id":       ping.UserID,
			"username":      ping.User.Username,
			"content":       ping.Content,
			"category":      ping.Category,
			"location_name": ping.LocationName,
			"upvotes":       ping.Upvotes,
			"vote_count":    votes,
			"comment_count": comments,
			"created_at":    ping.CreatedAt,
		}
		if len(ping.ImageData) > 0 {
			row["image_base64"] = base64.StdEncoding.EncodeToString(ping.ImageData)
		}
		responses = append(responses, row)
	}

	c.JSON(http.StatusOK, responses)
}

// Create inserts a new ping, compressing the attached image if present.
func (h *PingHandler) Create(c *gin.Context) {
	claims, ok := middlewareClaims(c)
	if !ok {
		return
	}

	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Content is required"})
		return
	}

	category := c.PostForm("category")
	if category == "" {
		category = "Other"
	}

	image, err := processUpload(c)
	if err != nil {
		uploadError(c, err)
		return
	}

	ping := models.Ping{
		UserID:       claims.UserID,
		Content:      content,
		Category:     category,
		LocationName: c.PostForm("location_name"),
		ImageData:    image,
		IsActive:     true,
	}

	if err := h.db.Create(&ping).Error; err != nil {
		internalError(c, "create ping", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ping created!",
		"pingId":  ping.ID,
	})
}

// Update edits a ping; the owner or an admin only. The stored image is
// replaced only when a new one is uploaded.
func (h *PingHandler) Update(c *gin.Context) {
	claims, ok := middlewareClaims(c)
	if !ok {
		return
	}

	ping, ok := h.findPing(c)
	if !ok {
		return
	}

	if !canModify(claims, ping.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Content is required"})
		return
	}

	category := c.PostForm("category")
	if category == "" {
		category = "Other"
	}

	image, err := processUpload(c)
	if err != nil {
		uploadError(c, err)
		return
	}

	updates := map[string]interface{}{
		"content":       content,
		"category":      category,
		"location_name": c.PostForm("location_name"),
	}
	if image != nil {
		updates["image_data"] = image
	}

	if err := h.db.Model(&ping).Updates(updates).Error; err != nil {
		internalError(c, "update ping", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ping updated successfully"})
}

// Delete removes a ping and its dependent rows; the owner or an admin only.
func (h *PingHandler) Delete(c *gin.Context) {
	claims, ok := middlewareClaims(c)
	if !ok {
		return
	}

	ping, ok := h.findPing(c)
	if !ok {
		return
	}

	if !canModify(claims, ping.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ping_id = ?", ping.ID).Delete(&models.PingVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ping_id = ?", ping.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ping).Error
	})
	if err != nil {
		internalError(c, "delete ping", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ping deleted"})
}

// Vote toggles the caller's upvote. The vote row and the denormalized
// counter move together inside one transaction so they cannot drift.
func (h *PingHandler) Vote(c *gin.Context) {
	claims, ok := middlewareClaims(c)
	if !ok {
		return
	}

	ping, ok := h.findPing(c)
	if !ok {
		return
	}

	voted := false
	toggle := func() error {
		return h.db.Transaction(func(tx *gorm.DB) error {
			voted = false

			// The decrement is gated on this delete actually removing a
			// row; a concurrent toggle-off that got there first deletes 0
			// rows here and must not touch the counter.
			res := tx.Where("user_id = ? AND ping_id = ?", claims.UserID, ping.ID).
				Delete(&models.PingVote{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				return tx.Model(&models.Ping{}).Where("id = ?", ping.ID).
					UpdateColumn("upvotes", gorm.Expr("upvotes - ?", 1)).Error
			}

			vote := models.PingVote{UserID: claims.UserID, PingID: ping.ID, VoteType: models.UpvoteType}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			voted = true
			return tx.Model(&models.Ping{}).Where("id = ?", ping.ID).
				UpdateColumn("upvotes", gorm.Expr("upvotes + ?", 1)).Error
		})
	}

	err := toggle()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent request inserted the vote row first. Rerun: this
		// attempt now observes that row and flips it off, as if the two
		// toggles had been serialized.
		err = toggle()
	}
	if err != nil {
		internalError(c, "toggle vote", err)
		return
	}

	message := "Vote removed"
	if voted {
		message = "Upvoted!"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "voted": voted})
}

// findPing resolves the :id route param; a missing or malformed id responds
// 404 and reports !ok.
func (h *PingHandler) findPing(c *gin.Context) (models.Ping, bool) {
	var ping models.Ping

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ping not found"})
		return ping, false
	}

	if err := h.db.First(&ping, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Ping not found"})
		} else {
			internalError(c, "fetch ping", err)
		}
		return ping, false
	}
	return ping, true
}
