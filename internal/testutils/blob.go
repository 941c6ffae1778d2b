package testutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// FakeBlobStore 内存对象存储，记录 Put/Delete 调用供断言使用
type FakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	deletes int

	FailPut    bool
	FailDelete bool
}

func NewFakeBlobStore() *FakeBlobStore {
	return &FakeBlobStore{objects: make(map[string][]byte)}
}

func (f *FakeBlobStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailPut {
		return "", errors.New("fake put failure")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://blob.test/nubenet/%d/%s", f.puts, name)
	f.objects[url] = data
	f.puts++
	return url, nil
}

func (f *FakeBlobStore) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletes++
	if f.FailDelete {
		return errors.New("fake delete failure")
	}

	delete(f.objects, url)
	return nil
}

// Has 判断某 URL 的对象是否仍存在
func (f *FakeBlobStore) Has(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[url]
	return ok
}

// ObjectCount 当前存储的对象数
func (f *FakeBlobStore) ObjectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// DeleteCalls 已发生的 Delete 调用次数
func (f *FakeBlobStore) DeleteCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes
}
