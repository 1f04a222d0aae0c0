package model

import (
	"strconv"
	"time"

	"github.com/questclash/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User, includeSensitive bool, rank int64) User {
	if user == nil {
		return User{}
	}

	walletAddress := user.WalletAddress.String
	role := user.Role
	if !includeSensitive {
		walletAddress = ""
		role = ""
	}

	return User{
		ID:            user.ID,
		WalletAddress: walletAddress,
		Name:          user.Name,
		Role:          role,
		AvatarURL:     user.AvatarURL,
		XP:            user.XP,
		Level:         entity.Level(user.XP),
		XPToNextLevel: entity.XPToNextLevel(user.XP),
		Tier:          string(entity.Tier(user.XP)),
		RewardPoints:  user.RewardPoints,
		UsdcBalance:   user.UsdcBalance,
		Streak:        user.Streak,
		Rank:          rank,
	}
}

func ConvertQuest(quest *entity.Quest) Quest {
	if quest == nil {
		return Quest{}
	}

	var usdcReward *float64
	if quest.UsdcReward.Valid {
		v := quest.UsdcReward.Float64
		usdcReward = &v
	}

	var maxParticipants *int64
	if quest.MaxParticipants.Valid {
		v := quest.MaxParticipants.Int64
		maxParticipants = &v
	}

	startedAt := ""
	if quest.StartedAt.Valid {
		startedAt = quest.StartedAt.Time.Format(DefaultTimeLayout)
	}

	endedAt := ""
	if quest.EndedAt.Valid {
		endedAt = quest.EndedAt.Time.Format(DefaultTimeLayout)
	}

	return Quest{
		ID:                 quest.ID,
		Title:              quest.Title,
		Description:        quest.Description,
		Category:           string(quest.Category),
		Difficulty:         string(quest.Difficulty),
		Tier:               string(quest.Tier),
		Duration:           quest.Duration,
		Requirements:       quest.Requirements,
		VerificationMethod: string(quest.VerificationMethod),
		ImageURL:           quest.ImageURL,
		XPReward:           quest.XPReward,
		UsdcReward:         usdcReward,
		VoucherReward:      quest.VoucherReward.String,
		CreatorCost:        quest.CreatorCost,
		JoinCost:           quest.JoinCost,
		Status:             string(quest.Status),
		Participants:       quest.Participants,
		MaxParticipants:    maxParticipants,
		CreatedBy:          quest.CreatedBy,
		CreatedAt:          quest.CreatedAt.Format(DefaultTimeLayout),
		StartedAt:          startedAt,
		EndedAt:            endedAt,
	}
}

func ConvertParticipation(participant *entity.QuestParticipant) Participation {
	if participant == nil {
		return Participation{}
	}

	return Participation{
		QuestID:           participant.QuestID,
		UserID:            participant.UserID,
		Status:            string(participant.Status),
		EvidenceSubmitted: participant.EvidenceSubmitted,
		JoinedAt:          participant.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertSubmission(submission *entity.Submission, now time.Time) Submission {
	if submission == nil {
		return Submission{}
	}

	timeRemaining := int64(0)
	if submission.Status == entity.SubmissionPending {
		if remaining := submission.DeadlineAt.Sub(now); remaining > 0 {
			timeRemaining = int64(remaining.Seconds())
		}
	}

	return Submission{
		ID:            submission.ID,
		QuestID:       submission.QuestID,
		UserID:        submission.UserID,
		Evidence:      submission.Evidence,
		VotesFor:      submission.VotesFor,
		VotesAgainst:  submission.VotesAgainst,
		Status:        string(submission.Status),
		TimeRemaining: timeRemaining,
	}
}

func ConvertTransaction(tx *entity.XPTransaction) Transaction {
	if tx == nil {
		return Transaction{}
	}

	return Transaction{
		ID:          strconv.FormatInt(tx.ID, 10),
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		QuestID:     tx.QuestID.String,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertReward(reward *entity.Reward) Reward {
	if reward == nil {
		return Reward{}
	}

	claimedAt := ""
	if reward.ClaimedAt.Valid {
		claimedAt = reward.ClaimedAt.Time.Format(DefaultTimeLayout)
	}

	return Reward{
		ID:        reward.ID,
		QuestID:   reward.QuestID,
		Type:      string(reward.Type),
		Amount:    reward.Amount,
		ClaimedAt: claimedAt,
	}
}

func ConvertBadge(badge *entity.Badge, detail *entity.BadgeDetail) Badge {
	if badge == nil {
		return Badge{}
	}

	earnedAt := ""
	if detail != nil {
		earnedAt = detail.CreatedAt.Format(DefaultTimeLayout)
	}

	return Badge{
		ID:          badge.ID,
		Name:        badge.Name,
		Level:       badge.Level,
		Description: badge.Description,
		IconURL:     badge.IconURL,
		EarnedAt:    earnedAt,
	}
}
