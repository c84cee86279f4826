package schedule

import (
	"slices"
	"time"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// 特殊休假代码，hours 一律为 0，不参与工时范围和强制工作日的检查
const (
	CodeVacation   = "VAC"  // 年假
	CodeBirthday   = "CUM"  // 生日假
	CodeDisability = "INC"  // 伤残假
	CodeJuryDuty   = "JUR"  // 陪审义务
	CodeFamilyDay  = "FAM"  // 家庭日
	CodeLeave      = "LIC"  // 事假
	CodeEnjoyment  = "DISF" // 调休日
)

// RuleCatalog 是按合同工时等级组织的排班规则集合。
// 规则做成不可变的值对象注入校验器，方便独立测试和按版本替换。
type RuleCatalog struct {
	MinShiftHours int32
	MaxShiftHours int32

	SundaysAllowed4Weeks int
	SundaysAllowed5Weeks int

	SpecialCodes []string

	LongBreakThreshold int32
	LongShiftBreak     string
	ShortShiftBreak    string
	RestBreak          string

	// StrictHourEquality 打开时总工时必须严格等于 工时等级*周数，
	// 否则只要求不超过
	StrictHourEquality bool
	// SaturdayRuleSeverity 控制周六强制上班规则是阻止提交还是仅提示
	SaturdayRuleSeverity Severity
}

func DefaultRuleCatalog() RuleCatalog {
	return RuleCatalog{
		MinShiftHours:        4,
		MaxShiftHours:        10,
		SundaysAllowed4Weeks: 2,
		SundaysAllowed5Weeks: 3,
		SpecialCodes: []string{
			CodeVacation,
			CodeBirthday,
			CodeDisability,
			CodeJuryDuty,
			CodeFamilyDay,
			CodeLeave,
			CodeEnjoyment,
		},
		LongBreakThreshold:   8,
		LongShiftBreak:       "01:00:00",
		ShortShiftBreak:      "00:15:00",
		RestBreak:            "00:00:00",
		StrictHourEquality:   false,
		SaturdayRuleSeverity: SeverityError,
	}
}

// MaxSundays 返回整个排班周期内 36/46 工时等级允许的周日上班次数上限
func (rc RuleCatalog) MaxSundays(numWeeks int) int {
	if numWeeks == 5 {
		return rc.SundaysAllowed5Weeks
	}
	return rc.SundaysAllowed4Weeks
}

func (rc RuleCatalog) IsSpecialCode(code string) bool {
	return slices.Contains(rc.SpecialCodes, code)
}

// BreakFor 按班次时长返回休息时间
func (rc RuleCatalog) BreakFor(hours int32) string {
	switch {
	case hours == 0:
		return rc.RestBreak
	case hours >= rc.LongBreakThreshold:
		return rc.LongShiftBreak
	default:
		return rc.ShortShiftBreak
	}
}

// IsHoliday 判断给定日期是否为法定节假日。
// TODO: 接入节假日表，目前 16 工时员工只能依赖周末规则
func (rc RuleCatalog) IsHoliday(t time.Time) bool {
	return false
}
