package schedule

import "github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"

// ValidationError 是校验过程中收集到的单条问题，
// 校验不会在第一个错误处中止，调用方一次就能看到全部问题
type ValidationError struct {
	EmployeeID string   `json:"employeeId"`
	Field      string   `json:"field"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
}

// ShiftProposal 是某个员工某一天的排班提案
type ShiftProposal struct {
	ShiftDate string `json:"shift_date"`
	Hours     int32  `json:"hours"`
	ShiftCode string `json:"shiftCode"`
	Break     string `json:"break,omitempty"`
}

// WeeklyShiftGroup 是一个员工一周的提案。
// WorkingDayOverride 允许某一周使用与员工当前不同的工时等级，
// 用来表达周期中途的合同变更
type WeeklyShiftGroup struct {
	Week               Week            `json:"week"`
	WorkingDayOverride *int32          `json:"workingDayOverride,omitempty"`
	Shifts             []ShiftProposal `json:"shifts"`
}

type EmployeeWeeklyShifts struct {
	Employee     *domain.Employee   `json:"employee"`
	WeeklyShifts []WeeklyShiftGroup `json:"weeklyShifts"`
}

// WeeklyVerdict 是单个员工单周的校验结论。
// 即使 IsValid 为 false，汇总字段仍然可用于诊断
type WeeklyVerdict struct {
	IsValid         bool              `json:"isValid"`
	TotalHours      int32             `json:"totalHours"`
	SundayWorkCount int               `json:"sundayWorkCount"`
	WorkedSaturday  bool              `json:"workedSaturday"`
	Errors          []ValidationError `json:"errors"`
}

// ValidatedWeek 是校验通过后可直接进入对账的一周数据
type ValidatedWeek struct {
	EmployeeID      string          `json:"employeeId"`
	Week            Week            `json:"week"`
	Shifts          []ShiftProposal `json:"shifts"`
	TotalHours      int32           `json:"totalHours"`
	SundayWorkCount int             `json:"sundayWorkCount"`
}

// BatchResult 是整批校验的结果，批次在校验阶段是全有或全无的：
// 只要存在 error 级别的问题，Data 就为空，什么都不会被持久化
type BatchResult struct {
	Success bool              `json:"success"`
	Data    []ValidatedWeek   `json:"data"`
	Errors  []ValidationError `json:"errors"`
}
