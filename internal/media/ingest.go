package media

import (
	"context"
	"log"
	"os"
	"strings"

	"nubenet/internal/db"
	"nubenet/internal/model"
	"nubenet/internal/service"
	"nubenet/internal/storage"
)

// Ingest 远程媒体抓取并转存：按 URL 片段分发到对应平台，
// 下载到临时文件后整体上传对象存储，成功才记录 File 行。
// 全程同步执行，无重试、无并发控制；临时文件在任何退出路径都会清理。
func Ingest(ctx context.Context, store storage.BlobStore, rawURL, category string, ownerID uint) (*model.File, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, service.NewValidationError("缺少视频链接")
	}
	category = service.NormalizeCategory(category)

	switch {
	case strings.Contains(rawURL, "youtube.com") || strings.Contains(rawURL, "youtu.be"):
		return ingestYouTube(ctx, store, rawURL, category, ownerID)
	case strings.Contains(rawURL, "tiktok.com"):
		return ingestTikTok(ctx, store, rawURL, category, ownerID)
	default:
		return nil, service.NewValidationError("不支持的链接，仅支持 YouTube 和 TikTok")
	}
}

// uploadTempFile 将临时文件整体上传并落库，是两条抓取路径的共同收尾
func uploadTempFile(ctx context.Context, store storage.BlobStore, tempPath, name, category string, ownerID uint) (*model.File, error) {
	f, err := os.Open(tempPath)
	if err != nil {
		return nil, service.NewInternalError("读取临时文件失败")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, service.NewInternalError("读取临时文件失败")
	}

	url, err := store.Put(ctx, name, f, info.Size(), "video/mp4")
	if err != nil {
		return nil, service.NewInternalError("上传到对象存储失败")
	}

	file := model.File{
		Filename: url,
		Category: category,
		UserID:   ownerID,
	}
	if err := db.DB.Create(&file).Error; err != nil {
		return nil, service.NewInternalError("保存文件记录失败")
	}
	return &file, nil
}

// removeTempFile 清理临时文件；所有抓取路径通过 defer 保证执行
func removeTempFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ 清理临时文件失败: %s: %v", path, err)
	}
}
