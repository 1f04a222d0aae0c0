package entity

import (
	"time"

	"github.com/questclash/backend/pkg/enum"
)

type ParticipantStatusType string

var (
	ParticipantJoined    = enum.New(ParticipantStatusType("joined"))
	ParticipantSubmitted = enum.New(ParticipantStatusType("submitted"))
	ParticipantCompleted = enum.New(ParticipantStatusType("completed"))
	ParticipantFailed    = enum.New(ParticipantStatusType("failed"))
)

// QuestParticipant records one user's membership in one quest. The
// composite primary key makes a second join of the same quest a key
// conflict instead of a duplicate row.
type QuestParticipant struct {
	QuestID string `gorm:"primaryKey"`
	Quest   Quest  `gorm:"foreignKey:QuestID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Status            ParticipantStatusType
	EvidenceSubmitted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
