package schedule

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

// Validator 按 RuleCatalog 中的合同工时规则校验排班提案
type Validator struct {
	rules RuleCatalog
}

func NewValidator(rules RuleCatalog) *Validator {
	return &Validator{rules: rules}
}

func (v *Validator) Rules() RuleCatalog {
	return v.rules
}

// effectiveWorkingDay 返回某一周实际生效的工时等级
func effectiveWorkingDay(group WeeklyShiftGroup, employee *domain.Employee) int32 {
	if group.WorkingDayOverride != nil {
		return *group.WorkingDayOverride
	}
	return employee.WorkingDay
}

// weeklyStats 在 WeeklyVerdict 之外记录批次级检查需要的细节
type weeklyStats struct {
	verdict WeeklyVerdict
	// 周六/周日被特殊休假代码占用时不算违规，也要计入覆盖
	saturdayExcused bool
	sundayExcused   bool
	workingDay      int32
}

// validateWeek 校验单个员工单周的提案。校验是穷举式的，
// 不在第一个错误处中止，所有问题都会被收集到 Errors 中
func (v *Validator) validateWeek(group WeeklyShiftGroup, employee *domain.Employee, weekIndex int) weeklyStats {
	stats := weeklyStats{workingDay: effectiveWorkingDay(group, employee)}
	verdict := &stats.verdict
	verdict.Errors = []ValidationError{}

	if len(group.Shifts) == 0 {
		verdict.Errors = append(verdict.Errors, ValidationError{
			EmployeeID: employee.NumberDocument,
			Field:      fmt.Sprintf("weeklyShifts[%d].shifts", weekIndex),
			Message:    "该周没有任何班次提案",
			Severity:   SeverityError,
		})
		return stats
	}

	sundayWorked := false

	for shiftIndex, shift := range group.Shifts {
		field := fmt.Sprintf("weeklyShifts[%d].shifts[%d]", weekIndex, shiftIndex)

		date, err := time.Parse(DateLayout, shift.ShiftDate)
		if err != nil {
			verdict.Errors = append(verdict.Errors, ValidationError{
				EmployeeID: employee.NumberDocument,
				Field:      field,
				Message:    fmt.Sprintf("班次日期 %q 无效，应为 YYYY-MM-DD", shift.ShiftDate),
				Severity:   SeverityError,
			})
			continue
		}

		weekday := isoWeekday(date)

		// 特殊休假代码视为 0 小时的休息日，
		// 不参与工时范围检查，也不触发强制工作日规则
		if v.rules.IsSpecialCode(shift.ShiftCode) {
			if weekday == 6 {
				stats.saturdayExcused = true
			}
			if weekday == 7 {
				stats.sundayExcused = true
			}
			continue
		}

		if shift.Hours != 0 && (shift.Hours < v.rules.MinShiftHours || shift.Hours > v.rules.MaxShiftHours) {
			verdict.Errors = append(verdict.Errors, ValidationError{
				EmployeeID: employee.NumberDocument,
				Field:      field,
				Message: fmt.Sprintf("班次工时必须为 0 或在 %d 到 %d 小时之间",
					v.rules.MinShiftHours, v.rules.MaxShiftHours),
				Severity: SeverityError,
			})
			continue
		}

		verdict.TotalHours += shift.Hours

		if weekday == 6 && shift.Hours > 0 {
			verdict.WorkedSaturday = true
		}
		if weekday == 7 && shift.Hours > 0 {
			sundayWorked = true
		}

		switch stats.workingDay {
		case domain.WorkingDayFullTime, domain.WorkingDayReduced:
			// 周六必须上班
			if weekday == 6 && shift.Hours == 0 {
				verdict.Errors = append(verdict.Errors, ValidationError{
					EmployeeID: employee.NumberDocument,
					Field:      field,
					Message:    fmt.Sprintf("员工在周六 %s 必须至少有一个上班班次", shift.ShiftDate),
					Severity:   v.rules.SaturdayRuleSeverity,
				})
				continue
			}
			// 周日上班计入周期配额，配额本身由批次级检查把关
			if weekday == 7 && shift.Hours > 0 {
				verdict.SundayWorkCount++
			}
		case domain.WorkingDayPartTime16:
			// 16 工时员工只能在周六、周日或法定节假日上班
			if weekday != 6 && weekday != 7 && !v.rules.IsHoliday(date) && shift.Hours > 0 {
				verdict.Errors = append(verdict.Errors, ValidationError{
					EmployeeID: employee.NumberDocument,
					Field:      field,
					Message:    "16 小时工时的员工只能在周六、周日或法定节假日上班",
					Severity:   SeverityError,
				})
			}
		}
	}

	// 24 工时员工每周日必须上班
	if stats.workingDay == domain.WorkingDayPartTime24 && !sundayWorked && !stats.sundayExcused {
		verdict.Errors = append(verdict.Errors, ValidationError{
			EmployeeID: employee.NumberDocument,
			Field:      fmt.Sprintf("weeklyShifts[%d]", weekIndex),
			Message:    "24 小时工时的员工每周日必须有一个上班班次",
			Severity:   SeverityError,
		})
	}

	verdict.IsValid = !hasBlockingErrors(verdict.Errors)

	return stats
}

// ValidateWeek 对外暴露的单周校验入口，weekIndex 从 0 开始，仅用于错误信息中的字段定位
func (v *Validator) ValidateWeek(group WeeklyShiftGroup, employee *domain.Employee, weekIndex int) WeeklyVerdict {
	return v.validateWeek(group, employee, weekIndex).verdict
}

// hasBlockingErrors 只有 error 级别的问题会让校验失败，warning 仅作提示
func hasBlockingErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
