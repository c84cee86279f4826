package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

// 2025 年 9 月的前四个劳动周
var septemberMondays = []string{"2025-09-01", "2025-09-08", "2025-09-15", "2025-09-22"}

func buildMonth(dailyHours [7]int32) []WeeklyShiftGroup {
	groups := make([]WeeklyShiftGroup, len(septemberMondays))
	for i, monday := range septemberMondays {
		groups[i] = buildWeek(i+1, monday, dailyHours)
	}
	return groups
}

func TestCreateShifts_ValidFullTimeBatch(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: buildMonth([7]int32{8, 8, 8, 8, 8, 6, 0}),
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Data, 4)

	for _, week := range result.Data {
		assert.Equal(t, "1000000001", week.EmployeeID)
		assert.Equal(t, int32(184), week.TotalHours)
		require.Len(t, week.Shifts, 7)
	}
}

func TestCreateShifts_BreaksAreNormalized(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: buildMonth([7]int32{8, 8, 8, 8, 8, 6, 0}),
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})
	require.True(t, result.Success)

	for _, shift := range result.Data[0].Shifts {
		switch {
		case shift.Hours == 0:
			assert.Equal(t, "00:00:00", shift.Break)
		case shift.Hours >= 8:
			assert.Equal(t, "01:00:00", shift.Break)
		default:
			assert.Equal(t, "00:15:00", shift.Break)
		}
	}
}

func TestCreateShifts_SundayQuotaExceeded(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	// 4 周内每个周日都上班，超过 2 次的配额
	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: buildMonth([7]int32{8, 8, 8, 8, 0, 6, 4}),
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})

	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	require.NotEmpty(t, result.Errors)

	found := false
	for _, e := range result.Errors {
		if e.Severity == SeverityError {
			assert.Contains(t, e.Message, "周日上班不能超过")
			found = true
		}
	}
	assert.True(t, found)
}

func TestCreateShifts_SundayQuotaAtLimit(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	groups := []WeeklyShiftGroup{
		buildWeek(1, septemberMondays[0], [7]int32{8, 8, 8, 8, 0, 6, 4}),
		buildWeek(2, septemberMondays[1], [7]int32{8, 8, 8, 8, 0, 6, 4}),
		buildWeek(3, septemberMondays[2], [7]int32{8, 8, 8, 8, 8, 6, 0}),
		buildWeek(4, septemberMondays[3], [7]int32{8, 8, 8, 8, 8, 6, 0}),
	}
	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: groups,
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Data[0].SundayWorkCount)
}

func TestCreateShifts_FiveWeekSundayQuota(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	// 2025 年 9 月按 5 周排，3 次周日上班在 5 周的配额之内
	mondays := append(append([]string{}, septemberMondays...), "2025-09-29")
	groups := make([]WeeklyShiftGroup, len(mondays))
	for i, monday := range mondays {
		hours := [7]int32{8, 8, 8, 0, 0, 6, 0}
		if i < 3 {
			hours = [7]int32{8, 8, 4, 0, 0, 6, 4}
		}
		groups[i] = buildWeek(i+1, monday, hours)
	}

	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayReduced),
		WeeklyShifts: groups,
	}

	result := v.CreateShifts(5, []EmployeeWeeklyShifts{es})

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Data[0].SundayWorkCount)
}

func TestCreateShifts_TotalHoursExceeded(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	// 每周 52 小时，超过 46 工时等级允许的总量
	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: buildMonth([7]int32{10, 10, 10, 8, 8, 6, 0}),
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})

	assert.False(t, result.Success)

	found := false
	for _, e := range result.Errors {
		if e.Field == "totalHours" {
			assert.Contains(t, e.Message, "超过")
			found = true
		}
	}
	assert.True(t, found)
}

func TestCreateShifts_StrictHourEquality(t *testing.T) {
	rules := DefaultRuleCatalog()
	rules.StrictHourEquality = true
	v := NewValidator(rules)

	// 每周 42 小时，在严格模式下必须等于 46
	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: buildMonth([7]int32{8, 8, 8, 8, 4, 6, 0}),
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})
	assert.False(t, result.Success)

	es.WeeklyShifts = buildMonth([7]int32{8, 8, 8, 8, 8, 6, 0})
	result = v.CreateShifts(4, []EmployeeWeeklyShifts{es})
	assert.True(t, result.Success)
}

func TestCreateShifts_MissingWeeksCountTowardExpectedHours(t *testing.T) {
	rules := DefaultRuleCatalog()
	rules.StrictHourEquality = true
	v := NewValidator(rules)

	// 只提交 4 周中的 2 周，缺失的周按工时等级计入预期总量
	es := EmployeeWeeklyShifts{
		Employee: testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: []WeeklyShiftGroup{
			buildWeek(1, septemberMondays[0], [7]int32{8, 8, 8, 8, 8, 6, 0}),
			buildWeek(2, septemberMondays[1], [7]int32{8, 8, 8, 8, 8, 6, 0}),
		},
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})

	assert.False(t, result.Success)

	found := false
	for _, e := range result.Errors {
		if e.Field == "totalHours" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCreateShifts_DuplicateDatesAreDroppedWithWarning(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	groups := buildMonth([7]int32{8, 8, 8, 8, 8, 6, 0})
	// 第一周周一的提案重复出现一次
	groups[0].Shifts = append(groups[0].Shifts, groups[0].Shifts[0])

	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: groups,
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})

	// 重复只产生 warning，不会阻止整批提交
	assert.True(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, SeverityWarning, result.Errors[0].Severity)
	assert.Contains(t, result.Errors[0].Message, "重复")

	// 第一次出现的提案保留，重复的被丢弃
	require.Len(t, result.Data[0].Shifts, 7)
}

func TestCreateShifts_DuplicateAcrossEntries(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	// 同一个员工被拆成了两个条目，第二个条目里的日期全部重复
	first := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: buildMonth([7]int32{8, 8, 8, 8, 8, 6, 0}),
	}
	second := EmployeeWeeklyShifts{
		Employee: testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: []WeeklyShiftGroup{
			buildWeek(1, septemberMondays[0], [7]int32{8, 8, 8, 8, 8, 6, 0}),
		},
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{first, second})

	// 重复只产生 warning，第一份提案合法时整批必须通过，
	// 被清空的重复周也不会再触发空周或周六覆盖的错误
	assert.True(t, result.Success)
	require.Len(t, result.Data, 4)

	warnings := 0
	for _, e := range result.Errors {
		assert.Equal(t, SeverityWarning, e.Severity)
		if e.Severity == SeverityWarning {
			warnings++
		}
	}
	assert.Equal(t, 7, warnings)
}

func TestCreateShifts_AllDuplicateEntryUnderStrictHours(t *testing.T) {
	rules := DefaultRuleCatalog()
	rules.StrictHourEquality = true
	v := NewValidator(rules)

	first := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: buildMonth([7]int32{8, 8, 8, 8, 8, 6, 0}),
	}
	// 纯重复的条目在严格工时模式下也不该被当成一个 0 工时的周期
	second := EmployeeWeeklyShifts{
		Employee: testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: []WeeklyShiftGroup{
			buildWeek(1, septemberMondays[0], [7]int32{8, 8, 8, 8, 8, 6, 0}),
		},
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{first, second})

	assert.True(t, result.Success)
	require.Len(t, result.Data, 4)
}

func TestCreateShifts_OverriddenWeeksUsePerWeekTiers(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	// 46 工时员工的每一周都改按 16 工时排，周六覆盖和周日配额都不再适用
	override := domain.WorkingDayPartTime16
	groups := buildMonth([7]int32{0, 0, 0, 0, 0, 0, 8})
	for i := range groups {
		groups[i].WorkingDayOverride = &override
	}

	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: groups,
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
}

func TestCreateShifts_OverriddenFullTimeWeekRequiresSaturday(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	// 16 工时员工有一周改按 46 工时排，这一周的周六覆盖必须满足
	override := domain.WorkingDayFullTime
	group := buildWeek(1, septemberMondays[0], [7]int32{8, 8, 8, 8, 8, 0, 0})
	group.WorkingDayOverride = &override

	es := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayPartTime16),
		WeeklyShifts: []WeeklyShiftGroup{group},
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{es})

	assert.False(t, result.Success)

	found := false
	for _, e := range result.Errors {
		if e.Field == "weeklyShifts" && e.Severity == SeverityError {
			assert.Contains(t, e.Message, "周六")
			found = true
		}
	}
	assert.True(t, found)
}

func TestCreateShifts_EmptyBatch(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	result := v.CreateShifts(4, nil)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "employeeShifts", result.Errors[0].Field)
}

func TestCreateShifts_MissingEmployee(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{{Employee: nil}})

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Unknown", result.Errors[0].EmployeeID)
}

func TestCreateShifts_OneInvalidEmployeeFailsWholeBatch(t *testing.T) {
	v := NewValidator(DefaultRuleCatalog())

	valid := EmployeeWeeklyShifts{
		Employee:     testEmployee(domain.WorkingDayFullTime),
		WeeklyShifts: buildMonth([7]int32{8, 8, 8, 8, 8, 6, 0}),
	}
	invalid := EmployeeWeeklyShifts{
		Employee: &domain.Employee{
			NumberDocument: "1000000002",
			FullName:       "李娟",
			WorkingDay:     domain.WorkingDayPartTime16,
		},
		// 16 工时员工排在周二
		WeeklyShifts: []WeeklyShiftGroup{
			buildWeek(1, septemberMondays[0], [7]int32{0, 4, 0, 0, 0, 8, 0}),
		},
	}

	result := v.CreateShifts(4, []EmployeeWeeklyShifts{valid, invalid})

	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
}
