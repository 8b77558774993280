package models

import "time"

// Rating is the one post-completion review attached to a mission.
type Rating struct {
	ID        string    `bson:"id" json:"id"`
	MissionID string    `bson:"missionId" json:"missionId"`
	RaterID   string    `bson:"raterId" json:"raterId"`
	RatedID   string    `bson:"ratedId" json:"ratedId"`
	Score     int       `bson:"score" json:"score"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`

	Rater *UserSummary `bson:"-" json:"rater,omitempty"`
}
