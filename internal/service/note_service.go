package service

import (
	"errors"

	"nubenet/internal/db"
	"nubenet/internal/model"

	"gorm.io/gorm"
)

// CreateNote 创建笔记。is_public 仅持久化，当前不影响可见性。
func CreateNote(title, content string, isPublic bool, ownerID uint) (*model.Note, error) {
	note := model.Note{
		Title:    title,
		Content:  content,
		IsPublic: isPublic,
		UserID:   ownerID,
	}
	if err := db.DB.Create(&note).Error; err != nil {
		return nil, NewInternalError("创建笔记失败")
	}
	return &note, nil
}

// ListNotes 列出某用户自己的全部笔记
func ListNotes(ownerID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := db.DB.Where("user_id = ?", ownerID).Find(&notes).Error; err != nil {
		return nil, NewInternalError("获取笔记失败")
	}
	return notes, nil
}

// DeleteNote 删除笔记，允许所有者或管理员
func DeleteNote(noteID uint, requesterID uint, requesterRole model.Role) error {
	var note model.Note
	if err := db.DB.First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("笔记不存在")
		}
		return NewInternalError("获取笔记失败")
	}

	if note.UserID != requesterID && requesterRole != model.RoleAdmin {
		return NewForbiddenError("没有权限删除该笔记")
	}

	if err := db.DB.Delete(&note).Error; err != nil {
		return NewInternalError("删除笔记失败")
	}
	return nil
}
