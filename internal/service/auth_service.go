package service

import (
	"errors"
	"log"
	"time"

	"nubenet/internal/config"
	"nubenet/internal/consts"
	"nubenet/internal/db"
	"nubenet/internal/model"
	"nubenet/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

func sessionDuration() time.Duration {
	hours := config.Get().Session.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	return time.Hour * time.Duration(hours)
}

func issueSessionToken(user *model.User) (string, error) {
	token, err := utils.GenerateSessionToken(user.ID, user.Username, user.Role, sessionDuration())
	if err != nil {
		return "", NewInternalError("登录失败，请稍后重试")
	}
	return token, nil
}

// LoginUser 校验用户名密码，成功返回会话令牌。
// 凭据正确但账号被封禁时拒绝建立会话。
func LoginUser(username, password string) (string, error) {
	var user model.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NewUnauthorizedError("用户名或密码错误")
		}
		return "", NewInternalError("登录失败，请稍后重试")
	}

	if !checkPassword(user.Password, password) {
		return "", NewUnauthorizedError("用户名或密码错误")
	}

	if user.Status == model.StatusBanned {
		return "", NewForbiddenError("该账号已被封禁")
	}

	return issueSessionToken(&user)
}

// RegisterUser 创建普通账号并直接登录，返回会话令牌
func RegisterUser(username, password string) (string, error) {
	if username == "" {
		return "", NewValidationError("用户名不能为空")
	}
	if len(password) < consts.MinPasswordLength {
		return "", NewValidationError("密码至少需要 4 个字符")
	}

	var count int64
	if err := db.DB.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return "", NewInternalError("注册失败，请稍后重试")
	}
	if count > 0 {
		return "", NewConflictError("用户名已存在")
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return "", NewInternalError("注册失败，请稍后重试")
	}

	user := model.User{
		Username: username,
		Password: hashed,
		Role:     model.RoleUser,
		Status:   model.StatusActive,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return "", NewConflictError("用户名已存在")
	}

	// 注册成功后自动登录
	return issueSessionToken(&user)
}

// ChangePassword 修改当前用户密码
func ChangePassword(userID uint, currentPassword, newPassword, confirmPassword string) error {
	var user model.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return NewNotFoundError("用户不存在")
	}

	if !checkPassword(user.Password, currentPassword) {
		return NewUnauthorizedError("当前密码不正确")
	}
	if newPassword != confirmPassword {
		return NewValidationError("两次输入的新密码不一致")
	}
	if len(newPassword) < consts.MinPasswordLength {
		return NewValidationError("新密码至少需要 4 个字符")
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return NewInternalError("修改密码失败，请稍后重试")
	}

	if err := db.DB.Model(&user).Update("password", hashed).Error; err != nil {
		return NewInternalError("修改密码失败，请稍后重试")
	}
	return nil
}

// EnsureAdminUser 幂等的启动例程：ADMIN 账号不存在时创建
func EnsureAdminUser() {
	var count int64
	if err := db.DB.Model(&model.User{}).Where("username = ?", consts.AdminUsername).Count(&count).Error; err != nil {
		log.Fatalf("❌ 检查 ADMIN 账号失败: %v", err)
	}
	if count > 0 {
		return
	}

	hashed, err := hashPassword(config.Get().Admin.Password)
	if err != nil {
		log.Fatalf("❌ 创建 ADMIN 账号失败: %v", err)
	}

	admin := model.User{
		Username: consts.AdminUsername,
		Password: hashed,
		Role:     model.RoleAdmin,
		Status:   model.StatusActive,
	}
	if err := db.DB.Create(&admin).Error; err != nil {
		log.Fatalf("❌ 创建 ADMIN 账号失败: %v", err)
	}
	log.Println("✅ 已创建默认 ADMIN 账号")
}
