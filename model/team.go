package model

import "gorm.io/gorm"

// Team is a roster of players owned by the user who created it.
type Team struct {
	gorm.Model
	FullName  string   `gorm:"size:128;not null"`
	Tag       string   `gorm:"size:16;not null"`
	LogoURL   string   `gorm:"size:256"`
	CreatorID uint     `gorm:"index;not null"`
	Players   []Player `gorm:"foreignKey:TeamId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type Player struct {
	ID       uint   `gorm:"primarykey"`
	TeamId   uint   `gorm:"index;not null"`
	Name     string `gorm:"size:64;not null"`
	PlayerID string `gorm:"size:64;not null"`
	Photo    string `gorm:"size:256"`
}
