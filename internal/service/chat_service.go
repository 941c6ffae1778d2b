package service

import (
	"errors"
	"strings"

	"nubenet/internal/consts"
	"nubenet/internal/db"
	"nubenet/internal/model"

	"gorm.io/gorm"
)

// ChatMessage 聊天消息的展示结构，作者被删除后用占位名
type ChatMessage struct {
	ID        uint   `json:"id"`
	User      string `json:"user"`
	Text      string `json:"text"`
	Edited    bool   `json:"edited"`
	Timestamp string `json:"timestamp"`
}

// SendMessage 发送聊天消息，空内容拒绝
func SendMessage(content string, authorID uint) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewValidationError("消息内容不能为空")
	}

	msg := model.Message{
		Content: content,
		UserID:  &authorID,
	}
	if err := db.DB.Create(&msg).Error; err != nil {
		return nil, NewInternalError("发送消息失败")
	}
	return &msg, nil
}

// ListMessages 返回最近 50 条消息，按时间升序（轮询拉取模型）
func ListMessages() ([]ChatMessage, error) {
	var messages []model.Message
	if err := db.DB.Preload("User").Order("timestamp DESC, id DESC").Limit(consts.ChatMessageLimit).Find(&messages).Error; err != nil {
		return nil, NewInternalError("获取消息失败")
	}

	// 取最近 N 条后翻转为升序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	result := make([]ChatMessage, 0, len(messages))
	for _, m := range messages {
		author := consts.DeletedUserPlaceholder
		if m.User != nil {
			author = m.User.Username
		}
		result = append(result, ChatMessage{
			ID:        m.ID,
			User:      author,
			Text:      m.Content,
			Edited:    m.Edited,
			Timestamp: m.Timestamp.Format("15:04"),
		})
	}
	return result, nil
}

// EditMessage 编辑消息并标记 edited，仅管理员
func EditMessage(messageID uint, newContent string, requesterRole model.Role) error {
	if requesterRole != model.RoleAdmin {
		return NewUnauthorizedError("需要管理员权限")
	}

	var msg model.Message
	if err := db.DB.First(&msg, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("消息不存在")
		}
		return NewInternalError("获取消息失败")
	}

	msg.Content = newContent
	msg.Edited = true
	if err := db.DB.Save(&msg).Error; err != nil {
		return NewInternalError("编辑消息失败")
	}
	return nil
}

// DeleteMessage 删除消息，仅管理员
func DeleteMessage(messageID uint, requesterRole model.Role) error {
	if requesterRole != model.RoleAdmin {
		return NewUnauthorizedError("需要管理员权限")
	}

	var msg model.Message
	if err := db.DB.First(&msg, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("消息不存在")
		}
		return NewInternalError("获取消息失败")
	}

	if err := db.DB.Delete(&msg).Error; err != nil {
		return NewInternalError("删除消息失败")
	}
	return nil
}
