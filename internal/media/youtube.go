package media

import (
	"context"
	"io"
	"os"

	"nubenet/internal/model"
	"nubenet/internal/service"
	"nubenet/internal/storage"
	"nubenet/internal/utils"

	"github.com/kkdai/youtube/v2"
)

// ingestYouTube 抓取 YouTube 视频：优先带音轨的 mp4 混流，退而求其次任意可用格式
func ingestYouTube(ctx context.Context, store storage.BlobStore, rawURL, category string, ownerID uint) (*model.File, error) {
	client := youtube.Client{}

	video, err := client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, service.NewInternalError("解析 YouTube 视频失败")
	}

	formats := video.Formats.WithAudioChannels().Type("video/mp4")
	if len(formats) == 0 {
		formats = video.Formats.WithAudioChannels()
	}
	if len(formats) == 0 {
		formats = video.Formats
	}
	if len(formats) == 0 {
		return nil, service.NewNotFoundError("该视频没有可下载的格式")
	}
	formats.Sort()

	stream, _, err := client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return nil, service.NewInternalError("下载 YouTube 视频流失败")
	}
	defer stream.Close()

	temp, err := os.CreateTemp("", "nubenet-yt-*.mp4")
	if err != nil {
		return nil, service.NewInternalError("创建临时文件失败")
	}
	tempPath := temp.Name()
	defer removeTempFile(tempPath)

	if _, err := io.Copy(temp, stream); err != nil {
		temp.Close()
		return nil, service.NewInternalError("下载 YouTube 视频失败")
	}
	if err := temp.Close(); err != nil {
		return nil, service.NewInternalError("写入临时文件失败")
	}

	title := video.Title
	if title == "" {
		title = "youtube_video"
	}
	name := utils.SanitizeFilename(title) + ".mp4"

	return uploadTempFile(ctx, store, tempPath, name, category, ownerID)
}
