package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"nubenet/internal/consts"
	"nubenet/internal/db"
	"nubenet/internal/model"
	"nubenet/internal/utils"

	"gorm.io/gorm"
)

// NormalizeCategory 分类统一小写，空值回退 general
func NormalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return consts.DefaultCategory
	}
	return category
}

// ListFiles 按分类列出文件，新→旧；category 为 "all" 或空表示不过滤
func ListFiles(category string) ([]model.File, error) {
	query := db.DB.Model(&model.File{})
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	var files []model.File
	if err := query.Order("upload_date DESC").Find(&files).Error; err != nil {
		return nil, NewInternalError("获取文件列表失败")
	}
	return files, nil
}

// ListCategories 返回已知分类的去重升序集合
func ListCategories() ([]string, error) {
	var categories []string
	if err := db.DB.Model(&model.File{}).Distinct("category").Order("category ASC").Pluck("category", &categories).Error; err != nil {
		return nil, NewInternalError("获取分类失败")
	}
	return categories, nil
}

// UploadFile 将内容推送到对象存储并记录 File 行。
// 存储失败时不落库，错误上报调用方，不做重试。
func UploadFile(ctx context.Context, r io.Reader, size int64, originalName, category string, ownerID uint) (*model.File, error) {
	name := utils.SanitizeFilename(originalName)
	if name == "" {
		return nil, NewValidationError("文件名不合法")
	}
	category = NormalizeCategory(category)

	url, err := blobStore.Put(ctx, name, r, size, "application/octet-stream")
	if err != nil {
		return nil, NewInternalError("上传到对象存储失败")
	}

	file := model.File{
		Filename: url,
		Category: category,
		UserID:   ownerID,
	}
	if err := db.DB.Create(&file).Error; err != nil {
		return nil, NewInternalError("保存文件记录失败")
	}
	return &file, nil
}

// DownloadURL 返回文件的存储 URL 供重定向下载
func DownloadURL(fileID uint) (string, error) {
	var file model.File
	if err := db.DB.First(&file, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NewNotFoundError("文件不存在")
		}
		return "", NewInternalError("获取文件失败")
	}
	if file.Filename == "" {
		return "", NewNotFoundError("文件在存储中不存在")
	}
	return file.Filename, nil
}

// DeleteFile 删除文件，仅允许所有者或管理员。
// 先尝试删除存储侧对象；对象删除失败时仍删除数据库行（已知的不一致风险，
// 可能遗留孤儿 blob），但会记录日志以便排查。
func DeleteFile(ctx context.Context, fileID uint, requesterID uint, requesterRole model.Role) error {
	var file model.File
	if err := db.DB.First(&file, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("文件不存在")
		}
		return NewInternalError("获取文件失败")
	}

	if requesterRole != model.RoleAdmin && file.UserID != requesterID {
		return NewForbiddenError("没有权限删除该文件")
	}

	if file.Filename != "" {
		if err := blobStore.Delete(ctx, file.Filename); err != nil {
			log.Printf("⚠️ 对象存储删除失败，数据库行仍将删除（可能遗留孤儿对象）: %s: %v", file.Filename, err)
		}
	}

	if err := db.DB.Delete(&file).Error; err != nil {
		return NewInternalError("删除文件记录失败")
	}
	return nil
}

// DeleteUserFiles 删除某用户全部文件的存储对象（行由外键级联处理）
func DeleteUserFiles(ctx context.Context, userID uint) error {
	var files []model.File
	if err := db.DB.Where("user_id = ?", userID).Find(&files).Error; err != nil {
		return err
	}
	for _, file := range files {
		if file.Filename == "" {
			continue
		}
		if err := blobStore.Delete(ctx, file.Filename); err != nil {
			log.Printf("⚠️ 清理用户 %d 的对象失败: %s: %v", userID, file.Filename, err)
		}
	}
	return nil
}
