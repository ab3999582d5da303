package model

// ── 项目 / 状态 / 性别 枚举 ──

// Program 生计项目类别
// 两个项目的申请人集合完全独立，互不引用
type Program string

const (
	ProgramGIP   Program = "GIP"   // Government Internship Program
	ProgramTUPAD Program = "TUPAD" // Tulong Panghanapbuhay sa Ating Disadvantaged/Displaced Workers
)

// Valid 判断是否为合法项目类别
func (p Program) Valid() bool {
	return p == ProgramGIP || p == ProgramTUPAD
}

// Programs 全部项目类别（固定顺序）
func Programs() []Program {
	return []Program{ProgramGIP, ProgramTUPAD}
}

// Status 申请处理状态。状态之间没有强制流转图，任意状态可以切换到任意状态
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusDeployed  Status = "DEPLOYED"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
	StatusResigned  Status = "RESIGNED"
)

// Statuses 全部处理状态（固定顺序，统计与导出按此排列）
func Statuses() []Status {
	return []Status{
		StatusPending, StatusApproved, StatusDeployed,
		StatusCompleted, StatusRejected, StatusResigned,
	}
}

// Gender 性别
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Genders 全部性别（固定顺序）
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale}
}

// ── 固定取值集合（来自登记表单） ──

// Barangays 圣罗莎市 18 个描笼涯（固定枚举，统计维度按此全量展开）
func Barangays() []string {
	return []string{
		"APLAYA", "BALIBAGO", "CAINGIN", "DILA", "DITA", "DON JOSE", "IBABA",
		"KANLURAN", "LABAS", "MACABLING", "MALITLIT", "MALUSAK", "MARKET AREA",
		"POOC", "PULONG SANTA CRUZ", "SANTO DOMINGO", "SINALHAN", "TAGAPO",
	}
}

// EducationLevels GIP 学历枚举
func EducationLevels() []string {
	return []string{
		"JUNIOR HIGH SCHOOL GRADUATE",
		"SENIOR HIGH SCHOOL GRADUATE",
		"HIGH SCHOOL GRADUATE",
		"COLLEGE GRADUATE",
		"TECHNICAL/VOCATIONAL COURSE GRADUATE",
		"ALS SECONDARY GRADUATE",
		"COLLEGE UNDERGRADUATE",
	}
}

// IDTypes TUPAD 证件类型枚举
func IDTypes() []string {
	return []string{
		"PHILSYS ID", "DRIVER'S LICENSE", "SSS ID", "UMID", "PASSPORT",
		"VOTER'S ID", "POSTAL ID", "PRC ID", "SENIOR CITIZEN ID", "PWD ID",
	}
}

// CivilStatuses TUPAD 婚姻状况枚举
func CivilStatuses() []string {
	return []string{"SINGLE", "MARRIED", "WIDOWED", "SEPARATED", "DIVORCED"}
}

// DateLayout 持久化日期格式（birthDate / dateSubmitted / archivedDate）
const DateLayout = "2006-01-02"

// DefaultEncoder 录入人缺省标签
const DefaultEncoder = "Administrator"

// ── 申请人记录 ──

// Applicant 一条申请记录：一个人对一个项目的一次申请。
// JSON 字段名即持久化布局（每个项目整表序列化为一个 JSON 数组快照），
// 与历史数据保持兼容，不引入 schema 版本号。
//
// id 与 code 在创建时分配，终生不变；program 创建后不可修改。
// 与项目无关的可选字段保持零值（序列化时省略），不写入占位值。
type Applicant struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"` // 人读编号，如 GIP-000001
	FirstName     string  `json:"firstName"`
	MiddleName    string  `json:"middleName,omitempty"`
	LastName      string  `json:"lastName"`
	ExtensionName string  `json:"extensionName,omitempty"` // JR. / III 等后缀
	BirthDate     string  `json:"birthDate"`               // YYYY-MM-DD
	Age           int     `json:"age"`                     // 由生日推导，调用方负责与 birthDate 同步
	Barangay      string  `json:"barangay"`
	ContactNumber string  `json:"contactNumber"`
	Telephone     string  `json:"telephone,omitempty"`
	Email         string  `json:"email,omitempty"`
	PlaceOfBirth  string  `json:"placeOfBirth,omitempty"`
	School        string  `json:"school,omitempty"`
	Gender        Gender  `json:"gender"`
	Encoder       string  `json:"encoder"`
	Status        Status  `json:"status"`
	DateSubmitted string  `json:"dateSubmitted"` // YYYY-MM-DD，创建时写入后不变
	Program       Program `json:"program"`

	// GIP 专属字段
	EducationalAttainment string `json:"educationalAttainment,omitempty"`
	BeneficiaryName       string `json:"beneficiaryName,omitempty"`
	Course                string `json:"course,omitempty"`

	// TUPAD 专属字段
	IDType                  string `json:"idType,omitempty"`
	IDNumber                string `json:"idNumber,omitempty"`
	Occupation              string `json:"occupation,omitempty"`
	CivilStatus             string `json:"civilStatus,omitempty"`
	AverageMonthlyIncome    string `json:"averageMonthlyIncome,omitempty"`
	DependentName           string `json:"dependentName,omitempty"`
	RelationshipToDependent string `json:"relationshipToDependent,omitempty"`

	// 附件（简历/照片）：文件名 + 内联 base64 内容，随快照一并序列化
	ResumeFileName string `json:"resumeFileName,omitempty"`
	ResumeFileData string `json:"resumeFileData,omitempty"`

	// 归档（软删除）：archived=true 时必有 archivedDate，恢复时两者同时清空
	Archived     bool   `json:"archived,omitempty"`
	ArchivedDate string `json:"archivedDate,omitempty"`
}

// FullName 报表展示用姓名：姓, 名 中间名 [后缀]
func (a *Applicant) FullName() string {
	name := a.LastName + ", " + a.FirstName
	if a.MiddleName != "" {
		name += " " + a.MiddleName
	}
	if a.ExtensionName != "" {
		name += " " + a.ExtensionName
	}
	return name
}

// [自证通过] internal/model/applicant.go
