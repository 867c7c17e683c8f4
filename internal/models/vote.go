package models

import "time"

// UpvoteType is the only vote value in use; there is no downvote path.
const UpvoteType = 1

// PingVote records a single user's vote on a ping. Toggling off deletes the
// row, so existence is the whole signal.
type PingVote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_ping_votes_user_ping" json:"user_id"`
	PingID    int       `gorm:"not null;uniqueIndex:idx_ping_votes_user_ping" json:"ping_id"`
	VoteType  int       `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}
