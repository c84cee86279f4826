package schedule

import (
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

type PlanActionType string

const (
	ActionCreate PlanActionType = "create"
	ActionUpdate PlanActionType = "update"
	ActionSkip   PlanActionType = "skip"
)

// PlanAction 是对单个 (employeeId, date) 槽位的决策
type PlanAction struct {
	Type           PlanActionType `json:"type"`
	NumberDocument string         `json:"numberDocument"`
	ShiftDate      string         `json:"shiftDate"`
	ShiftCode      string         `json:"shiftCode"`
	Break          string         `json:"break"`
}

// Plan 是对账产出的动作列表。skip 只计数不落库。
// 对同一批数据在写入后的状态上重新对账，结果必然是全 skip，
// 调用方可以放心地重放整个计划。
type Plan struct {
	Actions []PlanAction `json:"actions"`
	Created int          `json:"created"`
	Updated int          `json:"updated"`
	Skipped int          `json:"skipped"`
}

// Reconcile 将校验通过的批次与已持久化的记录逐一比对：
// 不存在则 create，存在且 (shiftCode, break) 一致则 skip，否则 update。
// 批内重复的 (employeeId, date) 只处理第一次出现的那条。
func Reconcile(validated []ValidatedWeek, existing []*domain.EmployeeShift) *Plan {
	existingByKey := make(map[string]*domain.EmployeeShift, len(existing))
	for _, record := range existing {
		existingByKey[record.NumberDocument+"|"+record.ShiftDate.Format(DateLayout)] = record
	}

	plan := &Plan{Actions: []PlanAction{}}
	seen := map[string]bool{}

	for _, week := range validated {
		for _, shift := range week.Shifts {
			key := week.EmployeeID + "|" + shift.ShiftDate
			if seen[key] {
				continue
			}
			seen[key] = true

			action := PlanAction{
				NumberDocument: week.EmployeeID,
				ShiftDate:      shift.ShiftDate,
				ShiftCode:      shift.ShiftCode,
				Break:          shift.Break,
			}

			record, exists := existingByKey[key]
			switch {
			case !exists:
				action.Type = ActionCreate
				plan.Created++
			case record.ShiftCode == shift.ShiftCode && record.Break == shift.Break:
				action.Type = ActionSkip
				plan.Skipped++
			default:
				action.Type = ActionUpdate
				plan.Updated++
			}

			plan.Actions = append(plan.Actions, action)
		}
	}

	return plan
}
