package storage

import (
	"context"
	"io"
)

// BlobStore 对象存储适配器：Put 返回可直接访问的持久 URL，Delete 按 URL 删除
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}
