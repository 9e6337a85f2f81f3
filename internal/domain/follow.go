package domain

import "time"

// Follow is one directed edge of the follow graph. The unique index on
// (follower_uid, followee_uid) makes a duplicate follow a constraint
// violation instead of a read-then-write race.
type Follow struct {
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	FollowerUID string    `gorm:"column:follower_uid;size:36;uniqueIndex:idx_follow_edge;index" json:"follower_uid"`
	FolloweeUID string    `gorm:"column:followee_uid;size:36;uniqueIndex:idx_follow_edge;index" json:"followee_uid"`
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
}

func (Follow) TableName() string {
	return "follows"
}

// FollowStatusResponse is returned from follow/unfollow actions
type FollowStatusResponse struct {
	TargetUID      string `json:"target_uid"`
	Following      bool   `json:"following"`
	FollowersCount int    `json:"followers_count"`
}

// CounterRecount is the result of a counter reconciliation pass
type CounterRecount struct {
	UID              string `json:"uid"`
	FollowersBefore  int    `json:"followers_before"`
	FollowersAfter   int    `json:"followers_after"`
	FollowingBefore  int    `json:"following_before"`
	FollowingAfter   int    `json:"following_after"`
	Drifted          bool   `json:"drifted"`
}
