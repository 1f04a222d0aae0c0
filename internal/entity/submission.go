package entity

import (
	"time"

	"github.com/questclash/backend/pkg/enum"
)

type SubmissionStatusType string

var (
	SubmissionPending  = enum.New(SubmissionStatusType("pending"))
	SubmissionApproved = enum.New(SubmissionStatusType("approved"))
	SubmissionRejected = enum.New(SubmissionStatusType("rejected"))
)

type Submission struct {
	Base

	QuestID string `gorm:"uniqueIndex:idx_submissions_quest_user"`
	Quest   Quest  `gorm:"foreignKey:QuestID"`

	UserID string `gorm:"uniqueIndex:idx_submissions_quest_user"`
	User   User   `gorm:"foreignKey:UserID"`

	Evidence     string `gorm:"type:longtext"`
	VotesFor     int
	VotesAgainst int
	Status       SubmissionStatusType

	// DeadlineAt is when the voting window closes. A submission still
	// pending after the deadline is rejected by the expiry job.
	DeadlineAt time.Time
}
