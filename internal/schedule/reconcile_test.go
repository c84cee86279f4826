package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

func existingShift(doc string, date string, code string, brk string) *domain.EmployeeShift {
	d, _ := time.Parse(DateLayout, date)
	return &domain.EmployeeShift{
		NumberDocument: doc,
		ShiftDate:      d,
		ShiftCode:      code,
		Break:          brk,
	}
}

func TestReconcile_CreateUpdateSkip(t *testing.T) {
	validated := []ValidatedWeek{{
		EmployeeID: "1000000001",
		Week:       Week{Index: 1, Start: "2025-09-01", End: "2025-09-07"},
		Shifts: []ShiftProposal{
			{ShiftDate: "2025-09-01", Hours: 8, ShiftCode: "T8", Break: "01:00:00"},
			{ShiftDate: "2025-09-02", Hours: 8, ShiftCode: "T8", Break: "01:00:00"},
			{ShiftDate: "2025-09-03", Hours: 4, ShiftCode: "T4", Break: "00:15:00"},
		},
	}}

	existing := []*domain.EmployeeShift{
		// 和提案完全一致，应跳过
		existingShift("1000000001", "2025-09-01", "T8", "01:00:00"),
		// 班次代码不同，应更新
		existingShift("1000000001", "2025-09-02", "T4", "00:15:00"),
		// 2025-09-03 不存在，应新建
	}

	plan := Reconcile(validated, existing)

	assert.Equal(t, 1, plan.Created)
	assert.Equal(t, 1, plan.Updated)
	assert.Equal(t, 1, plan.Skipped)
	require.Len(t, plan.Actions, 3)

	byDate := map[string]PlanAction{}
	for _, action := range plan.Actions {
		byDate[action.ShiftDate] = action
	}
	assert.Equal(t, ActionSkip, byDate["2025-09-01"].Type)
	assert.Equal(t, ActionUpdate, byDate["2025-09-02"].Type)
	assert.Equal(t, ActionCreate, byDate["2025-09-03"].Type)
}

func TestReconcile_NoExistingRecords(t *testing.T) {
	validated := []ValidatedWeek{{
		EmployeeID: "1000000001",
		Shifts: []ShiftProposal{
			{ShiftDate: "2025-09-01", Hours: 8, ShiftCode: "T8", Break: "01:00:00"},
			{ShiftDate: "2025-09-02", Hours: 0, ShiftCode: "DES", Break: "00:00:00"},
		},
	}}

	plan := Reconcile(validated, nil)

	assert.Equal(t, 2, plan.Created)
	assert.Equal(t, 0, plan.Updated)
	assert.Equal(t, 0, plan.Skipped)
}

func TestReconcile_SecondRunIsAllSkips(t *testing.T) {
	validated := []ValidatedWeek{{
		EmployeeID: "1000000001",
		Shifts: []ShiftProposal{
			{ShiftDate: "2025-09-01", Hours: 8, ShiftCode: "T8", Break: "01:00:00"},
			{ShiftDate: "2025-09-02", Hours: 8, ShiftCode: "T8", Break: "01:00:00"},
			{ShiftDate: "2025-09-03", Hours: 4, ShiftCode: "T4", Break: "00:15:00"},
		},
	}}

	first := Reconcile(validated, []*domain.EmployeeShift{
		existingShift("1000000001", "2025-09-02", "T4", "00:15:00"),
	})
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 1, first.Updated)

	// 模拟计划落库后的状态，再次对账应全部跳过
	applied := []*domain.EmployeeShift{}
	for _, action := range first.Actions {
		applied = append(applied, existingShift(action.NumberDocument, action.ShiftDate, action.ShiftCode, action.Break))
	}

	second := Reconcile(validated, applied)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, 3, second.Skipped)
}

func TestReconcile_DuplicateSlotsHandledOnce(t *testing.T) {
	validated := []ValidatedWeek{
		{
			EmployeeID: "1000000001",
			Shifts: []ShiftProposal{
				{ShiftDate: "2025-09-01", Hours: 8, ShiftCode: "T8", Break: "01:00:00"},
			},
		},
		{
			EmployeeID: "1000000001",
			Shifts: []ShiftProposal{
				{ShiftDate: "2025-09-01", Hours: 4, ShiftCode: "T4", Break: "00:15:00"},
			},
		},
	}

	plan := Reconcile(validated, nil)

	// 同一槽位只处理第一次出现的提案
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "T8", plan.Actions[0].ShiftCode)
}

func TestReconcile_DifferentEmployeesSameDate(t *testing.T) {
	validated := []ValidatedWeek{
		{
			EmployeeID: "1000000001",
			Shifts:     []ShiftProposal{{ShiftDate: "2025-09-01", Hours: 8, ShiftCode: "T8", Break: "01:00:00"}},
		},
		{
			EmployeeID: "1000000002",
			Shifts:     []ShiftProposal{{ShiftDate: "2025-09-01", Hours: 8, ShiftCode: "T8", Break: "01:00:00"}},
		},
	}

	plan := Reconcile(validated, []*domain.EmployeeShift{
		existingShift("1000000001", "2025-09-01", "T8", "01:00:00"),
	})

	// 日期相同但员工不同是两个独立的槽位
	assert.Equal(t, 1, plan.Skipped)
	assert.Equal(t, 1, plan.Created)
}
