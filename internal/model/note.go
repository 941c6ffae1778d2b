package model

import "time"

type Note struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Title   string `json:"title" gorm:"size:100"`
	Content string `json:"content" gorm:"type:text"`
	// IsPublic 已持久化但暂未接入跨用户可见性，仅列出本人笔记
	IsPublic  bool      `json:"is_public" gorm:"default:false"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
