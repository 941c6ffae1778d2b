package service

import (
	"context"
	"errors"

	"nubenet/internal/consts"
	"nubenet/internal/db"
	"nubenet/internal/model"

	"gorm.io/gorm"
)

// ListUsers 返回全部用户
func ListUsers() ([]model.User, error) {
	var users []model.User
	if err := db.DB.Order("id ASC").Find(&users).Error; err != nil {
		return nil, NewInternalError("获取用户列表失败")
	}
	return users, nil
}

func findTargetUser(userID uint) (*model.User, error) {
	var user model.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("用户不存在")
		}
		return nil, NewInternalError("获取用户失败")
	}
	return &user, nil
}

// BanUser 封禁用户；内置 ADMIN 账号不可封禁
func BanUser(userID uint) error {
	user, err := findTargetUser(userID)
	if err != nil {
		return err
	}
	if user.Username == consts.AdminUsername {
		return NewForbiddenError("不能封禁 ADMIN 账号")
	}

	if err := db.DB.Model(user).Update("status", model.StatusBanned).Error; err != nil {
		return NewInternalError("封禁用户失败")
	}
	return nil
}

// UnbanUser 解封用户
func UnbanUser(userID uint) error {
	user, err := findTargetUser(userID)
	if err != nil {
		return err
	}

	if err := db.DB.Model(user).Update("status", model.StatusActive).Error; err != nil {
		return NewInternalError("解封用户失败")
	}
	return nil
}

// ChangeRole 修改用户角色，仅允许 user/admin；ADMIN 账号不可修改
func ChangeRole(userID uint, newRole model.Role) error {
	user, err := findTargetUser(userID)
	if err != nil {
		return err
	}
	if user.Username == consts.AdminUsername {
		return NewForbiddenError("不能修改 ADMIN 账号的角色")
	}
	if !model.IsValidRole(newRole) {
		return NewValidationError("角色不合法")
	}

	if err := db.DB.Model(user).Update("role", newRole).Error; err != nil {
		return NewInternalError("修改角色失败")
	}
	return nil
}

// DeleteUser 删除用户；ADMIN 账号不可删除。
// 先清理该用户文件对应的存储对象，再删除行：
// 文件/笔记/待办按外键级联删除，消息保留并将作者置空。
func DeleteUser(ctx context.Context, userID uint) error {
	user, err := findTargetUser(userID)
	if err != nil {
		return err
	}
	if user.Username == consts.AdminUsername {
		return NewForbiddenError("不能删除 ADMIN 账号")
	}

	if err := DeleteUserFiles(ctx, userID); err != nil {
		return NewInternalError("清理用户文件失败")
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// SQLite 下 AutoMigrate 不保证外键约束生效，显式处理依赖行
		if err := tx.Model(&model.Message{}).Where("user_id = ?", userID).Update("user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.File{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return NewInternalError("删除用户失败")
	}
	return nil
}
