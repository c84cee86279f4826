package schedule

import (
	"fmt"

	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

// CreateShifts 校验一整批员工的排班提案。
// 批次级别会在各周结论之上做周期检查：周日配额、周六覆盖和总工时。
// 只要存在 error 级别的问题，整批都不会进入持久化阶段。
func (v *Validator) CreateShifts(numWeeks int, employeeShifts []EmployeeWeeklyShifts) *BatchResult {
	result := &BatchResult{Errors: []ValidationError{}}

	if len(employeeShifts) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:    "employeeShifts",
			Message:  "employeeShifts 不能为空",
			Severity: SeverityError,
		})
		return result
	}

	validated := []ValidatedWeek{}
	seen := map[string]bool{} // employeeID|date，整个批次内去重

	for _, es := range employeeShifts {
		if es.Employee == nil || len(es.WeeklyShifts) == 0 {
			employeeID := "Unknown"
			if es.Employee != nil {
				employeeID = es.Employee.NumberDocument
			}
			result.Errors = append(result.Errors, ValidationError{
				EmployeeID: employeeID,
				Field:      "employeeShifts",
				Message:    "每个元素都必须包含 employee 和 weeklyShifts",
				Severity:   SeverityError,
			})
			continue
		}

		groups, droppedWeeks, dupWarnings := v.dedupeWeeks(es, seen)
		result.Errors = append(result.Errors, dupWarnings...)

		// 条目的所有提案都和批次中先出现的内容重复时，
		// 只留下 warning，首次出现的那份已经完成了全部检查
		if len(groups) == 0 && droppedWeeks > 0 {
			continue
		}

		var totalHours, expectedHours int32
		totalSundays := 0
		fullTimeWeeks := 0
		saturdaysCovered := 0

		for weekIndex, group := range groups {
			stats := v.validateWeek(group, es.Employee, weekIndex)
			result.Errors = append(result.Errors, stats.verdict.Errors...)

			totalHours += stats.verdict.TotalHours
			totalSundays += stats.verdict.SundayWorkCount
			// 周期规则只约束实际按 36/46 工时等级排的周，
			// workingDayOverride 在这里和单周校验保持一致
			if stats.workingDay == domain.WorkingDayFullTime || stats.workingDay == domain.WorkingDayReduced {
				fullTimeWeeks++
				if stats.verdict.WorkedSaturday || stats.saturdayExcused {
					saturdaysCovered++
				}
			}
			expectedHours += stats.workingDay
		}

		// 传入的周数少于 numWeeks 时，缺失的周按员工当前工时等级计入预期工时，
		// 被整周去重掉的周不算缺失
		if provided := len(groups) + droppedWeeks; provided < numWeeks {
			expectedHours += es.Employee.WorkingDay * int32(numWeeks-provided)
		}

		result.Errors = append(result.Errors, v.validatePeriod(es.Employee, numWeeks, periodTotals{
			totalHours:       totalHours,
			expectedHours:    expectedHours,
			sundayWorkCount:  totalSundays,
			saturdaysCovered: saturdaysCovered,
			fullTimeWeeks:    fullTimeWeeks,
		})...)

		for _, group := range groups {
			validated = append(validated, ValidatedWeek{
				EmployeeID:      es.Employee.NumberDocument,
				Week:            group.Week,
				Shifts:          v.normalizeBreaks(group.Shifts),
				TotalHours:      totalHours,
				SundayWorkCount: totalSundays,
			})
		}

	}

	if hasBlockingErrors(result.Errors) {
		return result
	}

	result.Success = true
	result.Data = validated

	return result
}

type periodTotals struct {
	totalHours       int32
	expectedHours    int32
	sundayWorkCount  int
	saturdaysCovered int
	fullTimeWeeks    int
}

// validatePeriod 执行跨越整个排班周期的检查，这些约束无法在单周内判定。
// 周日配额和周六覆盖只约束按 36/46 等级排的周
func (v *Validator) validatePeriod(employee *domain.Employee, numWeeks int, totals periodTotals) []ValidationError {
	errs := []ValidationError{}

	if totals.fullTimeWeeks > 0 {
		maxSundays := v.rules.MaxSundays(numWeeks)
		if totals.sundayWorkCount > maxSundays {
			errs = append(errs, ValidationError{
				EmployeeID: employee.NumberDocument,
				Field:      "weeklyShifts",
				Message:    fmt.Sprintf("员工在 %d 周内周日上班不能超过 %d 次", numWeeks, maxSundays),
				Severity:   SeverityError,
			})
		}

		if totals.saturdaysCovered < totals.fullTimeWeeks {
			errs = append(errs, ValidationError{
				EmployeeID: employee.NumberDocument,
				Field:      "weeklyShifts",
				Message:    "排班周期内每个周六都必须有上班班次",
				Severity:   v.rules.SaturdayRuleSeverity,
			})
		}
	}

	if v.rules.StrictHourEquality {
		if totals.totalHours != totals.expectedHours {
			errs = append(errs, ValidationError{
				EmployeeID: employee.NumberDocument,
				Field:      "totalHours",
				Message: fmt.Sprintf("总工时（%d）必须等于 %d 周允许的工作时长（%d 小时）",
					totals.totalHours, numWeeks, totals.expectedHours),
				Severity: SeverityError,
			})
		}
	} else if totals.totalHours > totals.expectedHours {
		errs = append(errs, ValidationError{
			EmployeeID: employee.NumberDocument,
			Field:      "totalHours",
			Message: fmt.Sprintf("总工时（%d）超过了 %d 周允许的工作时长（%d 小时）",
				totals.totalHours, numWeeks, totals.expectedHours),
			Severity: SeverityError,
		})
	}

	return errs
}

// dedupeWeeks 去掉同一 (employeeId, date) 的重复提案，保留第一次出现的那条。
// 被丢弃的提案以 warning 的形式留在诊断中，不会阻止整批提交。
// seen 由整个批次共享，同一员工分散在多个条目中的重复也能被识别。
// 原本有提案但被去重清空的周整周丢弃并计入返回的丢弃数，
// 留下空壳会让单周和周期检查把纯粹的重复误判成错误。
func (v *Validator) dedupeWeeks(es EmployeeWeeklyShifts, seen map[string]bool) ([]WeeklyShiftGroup, int, []ValidationError) {
	warnings := []ValidationError{}
	droppedWeeks := 0

	groups := make([]WeeklyShiftGroup, 0, len(es.WeeklyShifts))
	for weekIndex, group := range es.WeeklyShifts {
		deduped := WeeklyShiftGroup{
			Week:               group.Week,
			WorkingDayOverride: group.WorkingDayOverride,
			Shifts:             make([]ShiftProposal, 0, len(group.Shifts)),
		}

		for shiftIndex, shift := range group.Shifts {
			key := es.Employee.NumberDocument + "|" + shift.ShiftDate
			if seen[key] {
				warnings = append(warnings, ValidationError{
					EmployeeID: es.Employee.NumberDocument,
					Field:      fmt.Sprintf("weeklyShifts[%d].shifts[%d]", weekIndex, shiftIndex),
					Message:    fmt.Sprintf("日期 %s 在本批次中重复，仅保留第一次出现的提案", shift.ShiftDate),
					Severity:   SeverityWarning,
				})
				continue
			}
			seen[key] = true
			deduped.Shifts = append(deduped.Shifts, shift)
		}

		if len(deduped.Shifts) == 0 && len(group.Shifts) > 0 {
			droppedWeeks++
			continue
		}

		groups = append(groups, deduped)
	}

	return groups, droppedWeeks, warnings
}

// normalizeBreaks 为没有显式指定休息时间的提案按规则补全
func (v *Validator) normalizeBreaks(shifts []ShiftProposal) []ShiftProposal {
	normalized := make([]ShiftProposal, len(shifts))
	for i, shift := range shifts {
		if shift.Break == "" {
			shift.Break = v.rules.BreakFor(shift.Hours)
		}
		normalized[i] = shift
	}
	return normalized
}
