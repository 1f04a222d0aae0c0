package entity

type Badge struct {
	Base

	Name        string `gorm:"uniqueIndex:idx_badges_name_level"`
	Level       int    `gorm:"uniqueIndex:idx_badges_name_level"`
	Value       int64
	Description string
	IconURL     string
}
