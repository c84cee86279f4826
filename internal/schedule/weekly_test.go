package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

func testEmployee(workingDay int32) *domain.Employee {
	return &domain.Employee{
		NumberDocument: "1000000001",
		FullName:       "张伟",
		WorkingDay:     workingDay,
	}
}

// buildWeek 从周一日期出发构造一整周的提案，dailyHours 按周一到周日排列。
// 班次代码按小时数生成，0 小时记为 DES
func buildWeek(index int, monday string, dailyHours [7]int32) WeeklyShiftGroup {
	start, _ := time.Parse(DateLayout, monday)
	group := WeeklyShiftGroup{
		Week: Week{Index: index, Start: monday, End: start.AddDate(0, 0, 6).Format(DateLayout)},
	}
	for i, hours := range dailyHours {
		code := "DES"
		if hours > 0 {
			code = fmt.Sprintf("T%d", hours)
		}
		group.Shifts = append(group.Shifts, ShiftProposal{
			ShiftDate: start.AddDate(0, 0, i).Format(DateLayout),
			Hours:     hours,
			ShiftCode: code,
		})
	}
	return group
}

func TestValidateWeek_FullTimeValid(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	// 2025-09-01 是周一
	group := buildWeek(1, "2025-09-01", [7]int32{8, 8, 8, 8, 8, 6, 0})
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayFullTime), 0)

	assert.True(t, verdict.IsValid)
	assert.Empty(t, verdict.Errors)
	assert.Equal(t, int32(46), verdict.TotalHours)
	assert.True(t, verdict.WorkedSaturday)
	assert.Equal(t, 0, verdict.SundayWorkCount)
}

func TestValidateWeek_HourBounds(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	group := buildWeek(1, "2025-09-01", [7]int32{3, 11, 8, 8, 8, 6, 0})
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayFullTime), 0)

	assert.False(t, verdict.IsValid)
	require.Len(t, verdict.Errors, 2)
	for _, e := range verdict.Errors {
		assert.Equal(t, SeverityError, e.Severity)
		assert.Contains(t, e.Message, "班次工时必须为 0 或在")
	}
	// 不合法的班次不计入总工时
	assert.Equal(t, int32(30), verdict.TotalHours)
}

func TestValidateWeek_SaturdayMandatory(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	group := buildWeek(1, "2025-09-01", [7]int32{8, 8, 8, 8, 8, 0, 0})
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayReduced), 0)

	assert.False(t, verdict.IsValid)
	require.Len(t, verdict.Errors, 1)
	assert.Contains(t, verdict.Errors[0].Message, "周六")
	assert.Equal(t, SeverityError, verdict.Errors[0].Severity)
}

func TestValidateWeek_SaturdayRuleAsWarning(t *testing.T) {
	rules := DefaultRuleCatalog()
	rules.SaturdayRuleSeverity = SeverityWarning
	v := NewValidator(rules)

	group := buildWeek(1, "2025-09-01", [7]int32{8, 8, 8, 8, 8, 0, 0})
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayFullTime), 0)

	// warning 不会让校验失败，但问题仍然会被记录下来
	assert.True(t, verdict.IsValid)
	require.Len(t, verdict.Errors, 1)
	assert.Equal(t, SeverityWarning, verdict.Errors[0].Severity)
}

func TestValidateWeek_SaturdayExcusedBySpecialCode(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	group := buildWeek(1, "2025-09-01", [7]int32{8, 8, 8, 8, 8, 0, 0})
	// 周六休年假，不触发周六强制上班规则
	group.Shifts[5].ShiftCode = "VAC"
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayFullTime), 0)

	assert.True(t, verdict.IsValid)
	assert.Empty(t, verdict.Errors)
}

func TestValidateWeek_SundayWorkIsCounted(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	group := buildWeek(1, "2025-09-01", [7]int32{8, 0, 8, 8, 8, 6, 8})
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayFullTime), 0)

	// 周日上班在单周层面不是错误，配额由批次级检查把关
	assert.True(t, verdict.IsValid)
	assert.Equal(t, 1, verdict.SundayWorkCount)
}

func TestValidateWeek_PartTime16OnlyWeekends(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	// 周二上班对 16 工时员工不合法
	group := buildWeek(1, "2025-09-01", [7]int32{0, 4, 0, 0, 0, 8, 4})
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayPartTime16), 0)

	assert.False(t, verdict.IsValid)
	require.Len(t, verdict.Errors, 1)
	assert.Contains(t, verdict.Errors[0].Message, "16 小时工时")

	// 只排周六和周日则合法
	group = buildWeek(1, "2025-09-01", [7]int32{0, 0, 0, 0, 0, 8, 8})
	verdict = v.ValidateWeek(group, testEmployee(domain.WorkingDayPartTime16), 0)

	assert.True(t, verdict.IsValid)
	assert.True(t, verdict.WorkedSaturday)
}

func TestValidateWeek_PartTime24SundayRequired(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	group := buildWeek(1, "2025-09-01", [7]int32{8, 8, 8, 0, 0, 0, 0})
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayPartTime24), 0)

	assert.False(t, verdict.IsValid)
	require.Len(t, verdict.Errors, 1)
	assert.Contains(t, verdict.Errors[0].Message, "周日")

	group = buildWeek(1, "2025-09-01", [7]int32{8, 8, 0, 0, 0, 0, 8})
	verdict = v.ValidateWeek(group, testEmployee(domain.WorkingDayPartTime24), 0)
	assert.True(t, verdict.IsValid)

	// 周日休假也视为满足要求
	group = buildWeek(1, "2025-09-01", [7]int32{8, 8, 8, 0, 0, 0, 0})
	group.Shifts[6].ShiftCode = "LIC"
	verdict = v.ValidateWeek(group, testEmployee(domain.WorkingDayPartTime24), 0)
	assert.True(t, verdict.IsValid)
}

func TestValidateWeek_WorkingDayOverride(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	// 员工当前是 46 工时，但这一周合同变更为 16 工时
	override := domain.WorkingDayPartTime16
	group := buildWeek(1, "2025-09-01", [7]int32{0, 4, 0, 0, 0, 8, 0})
	group.WorkingDayOverride = &override

	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayFullTime), 0)

	assert.False(t, verdict.IsValid)
	require.Len(t, verdict.Errors, 1)
	assert.Contains(t, verdict.Errors[0].Message, "16 小时工时")
}

func TestValidateWeek_EmptyWeek(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	group := WeeklyShiftGroup{Week: Week{Index: 1, Start: "2025-09-01", End: "2025-09-07"}}
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayFullTime), 0)

	assert.False(t, verdict.IsValid)
	require.Len(t, verdict.Errors, 1)
	assert.Contains(t, verdict.Errors[0].Message, "没有任何班次提案")
}

func TestValidateWeek_InvalidDate(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	group := buildWeek(1, "2025-09-01", [7]int32{8, 8, 8, 8, 8, 6, 0})
	group.Shifts[0].ShiftDate = "09/01/2025"
	verdict := v.ValidateWeek(group, testEmployee(domain.WorkingDayFullTime), 0)

	assert.False(t, verdict.IsValid)
	require.NotEmpty(t, verdict.Errors)
	assert.Contains(t, verdict.Errors[0].Message, "班次日期")
}
