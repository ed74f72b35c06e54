// internal/interactions/dto.go

package interactions

// SwipeRequest records a like or pass on another user
type SwipeRequest struct {
	TargetID  int64  `json:"target_id" validate:"required,gt=0"`
	Direction string `json:"direction" validate:"required,oneof=like pass"`
}

// SwipeResponse acknowledges a swipe and reports a new match if one formed
type SwipeResponse struct {
	Recorded bool   `json:"recorded"`
	Matched  bool   `json:"matched"`
	MatchID  *int64 `json:"match_id,omitempty"`
}
