// internal/interactions/models.go

package interactions

import "time"

// Swipe directions
const (
	DirectionLike = "like"
	DirectionPass = "pass"
)

// Swipe is one recorded like or pass
type Swipe struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	TargetID  int64     `json:"target_id" db:"target_id"`
	Direction string    `json:"direction" db:"direction"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Match is a mutual like. User1ID is always the smaller ID so each pair has
// exactly one row.
type Match struct {
	ID        int64     `json:"id" db:"id"`
	User1ID   int64     `json:"user1_id" db:"user1_id"`
	User2ID   int64     `json:"user2_id" db:"user2_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MatchedUser is a match joined with the other side's profile summary
type MatchedUser struct {
	MatchID     int64     `json:"match_id" db:"match_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	DisplayName string    `json:"display_name" db:"display_name"`
	City        *string   `json:"city,omitempty" db:"city"`
	MatchedAt   time.Time `json:"matched_at" db:"matched_at"`
}

// Block is a one-directional block
type Block struct {
	ID        int64     `json:"id" db:"id"`
	BlockerID int64     `json:"blocker_id" db:"blocker_id"`
	BlockedID int64     `json:"blocked_id" db:"blocked_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
