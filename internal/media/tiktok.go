package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"nubenet/internal/config"
	"nubenet/internal/model"
	"nubenet/internal/service"
	"nubenet/internal/storage"
)

// tiktokEnvelope 第三方 API 的响应外壳；字段可能缺失，解析需容错
type tiktokEnvelope struct {
	Success    bool `json:"success"`
	StatusCode int  `json:"statusCode"`
	Data       struct {
		HDPlay string `json:"hdplay"`
		Play   string `json:"play"`
	} `json:"data"`
}

// playLink 优先取高清链接，缺失时回退普通链接
func (e *tiktokEnvelope) playLink() string {
	if e.Data.HDPlay != "" {
		return e.Data.HDPlay
	}
	return e.Data.Play
}

// ingestTikTok 通过第三方 HTTP API 解析 TikTok 视频并转存
func ingestTikTok(ctx context.Context, store storage.BlobStore, rawURL, category string, ownerID uint) (*model.File, error) {
	cfg := config.Get().Media
	if cfg.RapidAPIHost == "" || cfg.RapidAPIKey == "" {
		return nil, service.NewInternalError("未配置 TikTok 下载 API")
	}

	endpoint := fmt.Sprintf("https://%s/tiktok/video", cfg.RapidAPIHost)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, service.NewInternalError("构造 API 请求失败")
	}
	q := url.Values{}
	q.Set("url", rawURL)
	q.Set("format", "json")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-RapidAPI-Host", cfg.RapidAPIHost)
	req.Header.Set("X-RapidAPI-Key", cfg.RapidAPIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, service.NewInternalError("调用 TikTok API 网络错误")
	}
	defer resp.Body.Close()

	var envelope tiktokEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, service.NewInternalError("解析 TikTok API 响应失败")
	}

	if !envelope.Success || envelope.StatusCode != http.StatusOK {
		return nil, service.NewInternalError("TikTok API 调用失败，无法下载")
	}

	link := envelope.playLink()
	if link == "" {
		return nil, service.NewNotFoundError("未找到 TikTok 下载链接")
	}

	tempPath, err := downloadToTempFile(ctx, link)
	if err != nil {
		return nil, err
	}
	defer removeTempFile(tempPath)

	name := fmt.Sprintf("tiktok_%d.mp4", time.Now().Unix())
	return uploadTempFile(ctx, store, tempPath, name, category, ownerID)
}

// downloadToTempFile 分块流式下载到临时文件，返回文件路径。
// 出错时文件已被清理，调用方只在成功路径负责删除。
func downloadToTempFile(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", service.NewInternalError("构造下载请求失败")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", service.NewInternalError("下载视频网络错误")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", service.NewInternalError("下载视频失败")
	}

	temp, err := os.CreateTemp("", "nubenet-tt-*.mp4")
	if err != nil {
		return "", service.NewInternalError("创建临时文件失败")
	}
	tempPath := temp.Name()

	buf := make([]byte, 8192)
	if _, err := io.CopyBuffer(temp, resp.Body, buf); err != nil {
		temp.Close()
		removeTempFile(tempPath)
		return "", service.NewInternalError("写入临时文件失败")
	}
	if err := temp.Close(); err != nil {
		removeTempFile(tempPath)
		return "", service.NewInternalError("写入临时文件失败")
	}

	return tempPath, nil
}
