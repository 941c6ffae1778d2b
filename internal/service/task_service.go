package service

import (
	"errors"
	"strings"

	"nubenet/internal/db"
	"nubenet/internal/model"

	"gorm.io/gorm"
)

// CreateTask 创建待办
func CreateTask(content string, ownerID uint) (*model.Task, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewValidationError("待办内容不能为空")
	}

	task := model.Task{
		Content: content,
		UserID:  ownerID,
	}
	if err := db.DB.Create(&task).Error; err != nil {
		return nil, NewInternalError("创建待办失败")
	}
	return &task, nil
}

// ListTasks 列出某用户的待办，新→旧
func ListTasks(ownerID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := db.DB.Where("user_id = ?", ownerID).Order("timestamp DESC").Find(&tasks).Error; err != nil {
		return nil, NewInternalError("获取待办失败")
	}
	return tasks, nil
}

func findOwnedTask(taskID, requesterID uint) (*model.Task, error) {
	var task model.Task
	if err := db.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("待办不存在")
		}
		return nil, NewInternalError("获取待办失败")
	}

	// 待办仅限本人操作，管理员也不例外（与笔记的授权规则刻意不对称）
	if task.UserID != requesterID {
		return nil, NewForbiddenError("没有权限操作该待办")
	}
	return &task, nil
}

// ToggleTask 翻转完成状态，仅限所有者
func ToggleTask(taskID, requesterID uint) error {
	task, err := findOwnedTask(taskID, requesterID)
	if err != nil {
		return err
	}

	if err := db.DB.Model(task).Update("is_done", !task.IsDone).Error; err != nil {
		return NewInternalError("更新待办失败")
	}
	return nil
}

// DeleteTask 删除待办，仅限所有者
func DeleteTask(taskID, requesterID uint) error {
	task, err := findOwnedTask(taskID, requesterID)
	if err != nil {
		return err
	}

	if err := db.DB.Delete(task).Error; err != nil {
		return NewInternalError("删除待办失败")
	}
	return nil
}
