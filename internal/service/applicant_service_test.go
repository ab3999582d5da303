package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Rodi229/Soft-Project/internal/dto"
	"github.com/Rodi229/Soft-Project/internal/model"
	"github.com/Rodi229/Soft-Project/internal/store"
)

// ── 测试辅助 ──

// fixedNow 固定时钟：2026-08-15
func fixedNow() time.Time {
	return time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
}

// sequentialIDs 递增 id 生成器
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("test-id-%d", n)
	}
}

func setupTestApplicantService() (ApplicantService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	svc := NewApplicantService(st, zap.NewNop(), fixedNow, sequentialIDs())
	return svc, st
}

func gipApplicant(firstName, lastName string) model.Applicant {
	return model.Applicant{
		FirstName:             firstName,
		LastName:              lastName,
		BirthDate:             "2000-01-15",
		Age:                   26,
		Barangay:              "BALIBAGO",
		ContactNumber:         "09123456789",
		Gender:                model.GenderMale,
		EducationalAttainment: "COLLEGE GRADUATE",
		Status:                model.StatusPending,
		Program:               model.ProgramGIP,
	}
}

func tupadApplicant(firstName, lastName string) model.Applicant {
	return model.Applicant{
		FirstName:     firstName,
		LastName:      lastName,
		BirthDate:     "1995-05-20",
		Age:           31,
		Barangay:      "DITA",
		ContactNumber: "09987654321",
		Gender:        model.GenderFemale,
		Occupation:    "VENDOR",
		CivilStatus:   "MARRIED",
		Status:        model.StatusApproved,
		Program:       model.ProgramTUPAD,
	}
}

// ── Add 测试 ──

func TestAdd_AssignsIDCodeAndDate(t *testing.T) {
	svc, _ := setupTestApplicantService()

	created, err := svc.Add(context.Background(), gipApplicant("JUAN", "DELA CRUZ"))
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}

	if created.ID != "test-id-1" {
		t.Errorf("期望 ID=test-id-1，实际=%s", created.ID)
	}
	if created.Code != "GIP-000001" {
		t.Errorf("期望 Code=GIP-000001，实际=%s", created.Code)
	}
	if created.DateSubmitted != "2026-08-15" {
		t.Errorf("期望 DateSubmitted=2026-08-15，实际=%s", created.DateSubmitted)
	}
}

func TestAdd_DefaultEncoder(t *testing.T) {
	svc, _ := setupTestApplicantService()

	created, err := svc.Add(context.Background(), gipApplicant("JUAN", "DELA CRUZ"))
	if err != nil {
		t.Fatal(err)
	}
	if created.Encoder != model.DefaultEncoder {
		t.Errorf("未指定录入人时期望 %q，实际=%q", model.DefaultEncoder, created.Encoder)
	}

	withEncoder := gipApplicant("PEDRO", "REYES")
	withEncoder.Encoder = "STAFF-01"
	created2, err := svc.Add(context.Background(), withEncoder)
	if err != nil {
		t.Fatal(err)
	}
	if created2.Encoder != "STAFF-01" {
		t.Errorf("显式录入人不应被覆盖，实际=%q", created2.Encoder)
	}
}

func TestAdd_InvalidProgram(t *testing.T) {
	svc, _ := setupTestApplicantService()

	bad := gipApplicant("JUAN", "DELA CRUZ")
	bad.Program = "SLP"

	if _, err := svc.Add(context.Background(), bad); !errors.Is(err, ErrInvalidProgram) {
		t.Errorf("期望 ErrInvalidProgram，实际: %v", err)
	}
}

// ── 编号生成测试 ──

func TestNextCode_Sequential(t *testing.T) {
	svc, _ := setupTestApplicantService()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		created, err := svc.Add(ctx, gipApplicant("JUAN", "DELA CRUZ"))
		if err != nil {
			t.Fatal(err)
		}
		want := fmt.Sprintf("GIP-%06d", i)
		if created.Code != want {
			t.Errorf("第 %d 条期望 Code=%s，实际=%s", i, want, created.Code)
		}
	}
}

func TestNextCode_IndependentPerProgram(t *testing.T) {
	svc, _ := setupTestApplicantService()
	ctx := context.Background()

	if _, err := svc.Add(ctx, gipApplicant("JUAN", "DELA CRUZ")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, gipApplicant("PEDRO", "REYES")); err != nil {
		t.Fatal(err)
	}

	created, err := svc.Add(ctx, tupadApplicant("MARIA", "SANTOS"))
	if err != nil {
		t.Fatal(err)
	}
	if created.Code != "TUPAD-000001" {
		t.Errorf("两个项目的编号序列应相互独立，期望 TUPAD-000001，实际=%s", created.Code)
	}
}

func TestNextCode_NoReuseAfterDelete(t *testing.T) {
	svc, _ := setupTestApplicantService()
	ctx := context.Background()

	first, _ := svc.Add(ctx, gipApplicant("JUAN", "DELA CRUZ"))
	if _, err := svc.Add(ctx, gipApplicant("PEDRO", "REYES")); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, model.ProgramGIP, first.ID); err != nil {
		t.Fatal(err)
	}

	third, err := svc.Add(ctx, gipApplicant("JOSE", "RIZAL"))
	if err != nil {
		t.Fatal(err)
	}
	// 最大后缀仍是 2，新编号应为 3 而非复用 1
	if third.Code != "GIP-000003" {
		t.Errorf("删除后编号不应复用，期望 GIP-000003，实际=%s", third.Code)
	}
}

func TestNextCode_IgnoresMalformedCodes(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	// 预置一条编号格式不合规的历史记录
	legacy := gipApplicant("LEGACY", "RECORD")
	legacy.ID = "legacy-1"
	legacy.Code = "GIP-XXXX"
	if err := st.Save(ctx, model.ProgramGIP, []model.Applicant{legacy}); err != nil {
		t.Fatal(err)
	}

	svc := NewApplicantService(st, zap.NewNop(), fixedNow, sequentialIDs())
	created, err := svc.Add(ctx, gipApplicant("JUAN", "DELA CRUZ"))
	if err != nil {
		t.Fatal(err)
	}
	if created.Code != "GIP-000001" {
		t.Errorf("不合规编号应被忽略，期望 GIP-000001，实际=%s", created.Code)
	}
}

// ── GetByID / Update 测试 ──

func TestGetByID_Success(t *testing.T) {
	svc, _ := setupTestApplicantService()
	ctx := context.Background()

	created, _ := svc.Add(ctx, gipApplicant("JUAN", "DELA CRUZ"))

	got, err := svc.GetByID(ctx, model.ProgramGIP, created.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if got.Code != created.Code {
		t.Errorf("期望 Code=%s，实际=%s", created.Code, got.Code)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := setupTestApplicantService()

	_, err := svc.GetByID(context.Background(), model.ProgramGIP, "nonexistent")
	if !errors.Is(err, ErrApplicantNotFound) {
		t.Errorf("期望 ErrApplicantNotFound，实际: %v", err)
	}
}

func TestUpdate_ReplacesRecord(t *testing.T) {
	svc, _ := setupTestApplicantService()
	ctx := context.Background()

	created, _ := svc.Add(ctx, gipApplicant("JUAN", "DELA CRUZ"))

	modified := *created
	modified.Status = model.StatusDeployed
	modified.Barangay = "DITA"

	updated, err := svc.Update(ctx, model.ProgramGIP, modified)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Status != model.StatusDeployed {
		t.Errorf("期望 Status=DEPLOYED，实际=%s", updated.Status)
	}

	got, _ := svc.GetByID(ctx, model.ProgramGIP, created.ID)
	if got.Barangay != "DITA" {
		t.Errorf("更新应已持久化，期望 Barangay=DITA，实际=%s", got.Barangay)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := setupTestApplicantService()

	ghost := gipApplicant("GHOST", "RECORD")
	ghost.ID = "nonexistent"

	_, err := svc.Update(context.Background(), model.ProgramGIP, ghost)
	if !errors.Is(err, ErrApplicantNotFound) {
		t.Errorf("期望 ErrApplicantNotFound，实际: %v", err)
	}
}

// ── Archive / Unarchive 测试 ──

func TestArchive_SetsFlagAndDate(t *testing.T) {
	svc, _ := setupTestApplicantService()
	ctx := context.Background()

	created, _ := svc.Add(ctx, gipApplicant("JUAN", "DELA CRUZ"))

	if err := svc.Archive(ctx, model.ProgramGIP, created.ID); err != nil {
		t.Fatalf("Archive 应成功: %v", err)
	}

	got, _ := svc.GetByID(ctx, model.ProgramGIP, created.ID)
	if !got.Archived {
		t.Error("期望 Archived=true")
	}
	if got.ArchivedDate != "2026-08-15" {
		t.Errorf("期望 ArchivedDate=2026-08-15，实际=%s", got.ArchivedDate)
	}
	// 其余字段保持原样
	if got.Code != created.Code || got.Status != created.Status {
		t.Error("归档不应改动其他字段")
	}
}

func TestUnarchive_ClearsFlagAndDate(t *testing.T) {
	svc, _ := setupTestApplicantService()
	ctx := context.Background()

	created, _ := svc.Add(ctx, gipApplicant("JUAN", "DELA CRUZ"))
	if err := svc.Archive(ctx, model.ProgramGIP, created.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.Unarchive(ctx, model.ProgramGIP, created.ID); err != nil {
		t.Fatalf("Unarchive 应成功: %v", err)
	}

	got, _ := svc.GetByID(ctx, model.ProgramGIP, created.ID)
	if got.Archived {
		t.Error("期望 Archived=false")
	}
	if got.ArchivedDate != "" {
		t.Errorf("还原后 ArchivedDate 应清空，实际=%s", got.ArchivedDate)
	}
}

func TestArchive_NotFound(t *testing.T) {
	svc, _ := setupTestApplicantService()

	err := svc.Archive(context.Background(), model.ProgramGIP, "nonexistent")
	if !errors.Is(err, ErrApplicantNotFound) {
		t.Errorf("期望 ErrApplicantNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestDelete_RemovesExactlyOne(t *testing.T) {
	svc, _ := setupTestApplicantService()
	ctx := context.Background()

	first, _ := svc.Add(ctx, gipApplicant("JUAN", "DELA CRUZ"))
	second, _ := svc.Add(ctx, gipApplicant("PEDRO", "REYES"))

	if err := svc.Delete(ctx, model.ProgramGIP, first.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	if _, err := svc.GetByID(ctx, model.ProgramGIP, first.ID); !errors.Is(err, ErrApplicantNotFound) {
		t.Error("被删除记录不应再能查到")
	}
	if _, err := svc.GetByID(ctx, model.ProgramGIP, second.ID); err != nil {
		t.Errorf("其余记录应保留: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := setupTestApplicantService()

	err := svc.Delete(context.Background(), model.ProgramGIP, "nonexistent")
	if !errors.Is(err, ErrApplicantNotFound) {
		t.Errorf("期望 ErrApplicantNotFound，实际: %v", err)
	}
}

// ── Filter 测试 ──

func seedFilterFixture(t *testing.T, svc ApplicantService) (juan, pedro, maria model.Applicant) {
	t.Helper()
	ctx := context.Background()

	a := gipApplicant("JUAN", "DELA CRUZ") // BALIBAGO / PENDING / MALE / 26
	b := gipApplicant("PEDRO", "REYES")
	b.Barangay = "DITA"
	b.Status = model.StatusApproved
	b.Age = 22
	b.EducationalAttainment = "HIGH SCHOOL GRADUATE"
	c := gipApplicant("MARIA", "SANTOS")
	c.Barangay = "APLAYA"
	c.Gender = model.GenderFemale
	c.Status = model.StatusApproved
	c.Age = 61

	p1, err := svc.Add(ctx, a)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := svc.Add(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	p3, err := svc.Add(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	return *p1, *p2, *p3
}

func TestFilter_NoCriteriaReturnsAll(t *testing.T) {
	svc, _ := setupTestApplicantService()
	seedFilterFixture(t, svc)

	result, err := svc.Filter(context.Background(), model.ProgramGIP, &dto.FilterCriteria{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 3 {
		t.Errorf("无条件筛选应返回全部 3 条，实际 %d", len(result))
	}
}

func TestFilter_SearchTermMatchesAnyField(t *testing.T) {
	svc, _ := setupTestApplicantService()
	_, pedro, _ := seedFilterFixture(t, svc)
	ctx := context.Background()

	// 姓匹配（大小写不敏感）
	byName, err := svc.Filter(ctx, model.ProgramGIP, &dto.FilterCriteria{SearchTerm: "reyes"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byName) != 1 || byName[0].ID != pedro.ID {
		t.Errorf("按姓搜索期望命中 PEDRO REYES，实际 %d 条", len(byName))
	}

	// 编号匹配
	byCode, err := svc.Filter(ctx, model.ProgramGIP, &dto.FilterCriteria{SearchTerm: pedro.Code})
	if err != nil {
		t.Fatal(err)
	}
	if len(byCode) != 1 {
		t.Errorf("按编号搜索期望 1 条，实际 %d", len(byCode))
	}

	// 描笼涯匹配
	byBarangay, err := svc.Filter(ctx, model.ProgramGIP, &dto.FilterCriteria{SearchTerm: "balibago"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byBarangay) != 1 {
		t.Errorf("按描笼涯搜索期望 1 条，实际 %d", len(byBarangay))
	}
}

func TestFilter_CriteriaConjunction(t *testing.T) {
	svc, _ := setupTestApplicantService()
	_, pedro, _ := seedFilterFixture(t, svc)

	// APPROVED 有两条，叠加描笼涯后只剩 PEDRO
	result, err := svc.Filter(context.Background(), model.ProgramGIP, &dto.FilterCriteria{
		Status:   "APPROVED",
		Barangay: "DITA",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 1 || result[0].ID != pedro.ID {
		t.Errorf("条件应取交集，期望仅 PEDRO，实际 %d 条", len(result))
	}
}

func TestFilter_SentinelValuesIgnored(t *testing.T) {
	svc, _ := setupTestApplicantService()
	seedFilterFixture(t, svc)

	result, err := svc.Filter(context.Background(), model.ProgramGIP, &dto.FilterCriteria{
		Status:    "All Status",
		Barangay:  "All Barangays",
		Gender:    "All Genders",
		AgeRange:  "All Ages",
		Education: "All Education Levels",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 3 {
		t.Errorf("全哨兵值应等价于无条件，期望 3 条，实际 %d", len(result))
	}
}

func TestFilter_AgeRange(t *testing.T) {
	svc, _ := setupTestApplicantService()
	seedFilterFixture(t, svc) // 年龄 26 / 22 / 61

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"闭区间", "18-29", 2},
		{"只有下限", "60+", 1},
		{"无命中", "30-59", 0},
		{"非法记号不构成约束", "abc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Filter(context.Background(), model.ProgramGIP, &dto.FilterCriteria{AgeRange: tt.token})
			if err != nil {
				t.Fatal(err)
			}
			if len(result) != tt.want {
				t.Errorf("记号 %q 期望 %d 条，实际 %d", tt.token, tt.want, len(result))
			}
		})
	}
}

func TestFilter_Education(t *testing.T) {
	svc, _ := setupTestApplicantService()
	seedFilterFixture(t, svc)

	result, err := svc.Filter(context.Background(), model.ProgramGIP, &dto.FilterCriteria{
		Education: "HIGH SCHOOL GRADUATE",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 1 {
		t.Errorf("按学历筛选期望 1 条，实际 %d", len(result))
	}
}

// ── List 测试 ──

func TestList_ArchivedSelection(t *testing.T) {
	svc, _ := setupTestApplicantService()
	juan, _, _ := seedFilterFixture(t, svc)
	ctx := context.Background()

	if err := svc.Archive(ctx, model.ProgramGIP, juan.ID); err != nil {
		t.Fatal(err)
	}

	active, total, err := svc.List(ctx, &dto.ListApplicantsRequest{Program: model.ProgramGIP})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(active) != 2 {
		t.Errorf("在册列表期望 2 条，实际 total=%d len=%d", total, len(active))
	}

	archived, total, err := svc.List(ctx, &dto.ListApplicantsRequest{Program: model.ProgramGIP, Archived: true})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || archived[0].ID != juan.ID {
		t.Errorf("归档箱期望仅 JUAN，实际 total=%d", total)
	}
}

func TestList_Pagination(t *testing.T) {
	svc, _ := setupTestApplicantService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Add(ctx, gipApplicant("JUAN", fmt.Sprintf("NO%d", i))); err != nil {
			t.Fatal(err)
		}
	}

	req := &dto.ListApplicantsRequest{Program: model.ProgramGIP}
	req.Page = 2
	req.PageSize = 2

	page, total, err := svc.List(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Errorf("期望 total=5，实际=%d", total)
	}
	if len(page) != 2 {
		t.Errorf("第 2 页期望 2 条，实际 %d", len(page))
	}

	// 越界页返回空页但 total 不变
	req.Page = 10
	page, total, err = svc.List(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(page) != 0 {
		t.Errorf("越界页期望空页 total=5，实际 total=%d len=%d", total, len(page))
	}
}
