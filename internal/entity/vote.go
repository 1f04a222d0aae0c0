package entity

import "time"

// Vote is append-only. The composite primary key rejects a second vote by
// the same voter on the same submission.
type Vote struct {
	SubmissionID string     `gorm:"primaryKey"`
	Submission   Submission `gorm:"foreignKey:SubmissionID"`

	VoterID string `gorm:"primaryKey"`
	Voter   User   `gorm:"foreignKey:VoterID"`

	Approve   bool
	CreatedAt time.Time
}
