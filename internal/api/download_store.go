package api

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type exportDownload struct {
	filePath  string
	fileName  string
	expiresAt time.Time
}

// exportDownloadStore 导出文件的一次性下载令牌
type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
	}
}

func (s *exportDownloadStore) put(filePath, fileName string, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = uuid.New().String()
	s.items[token] = exportDownload{
		filePath:  filePath,
		fileName:  fileName,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *exportDownloadStore) get(token string) (exportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	return v, ok
}

func (s *exportDownloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
