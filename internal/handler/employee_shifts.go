package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/schedule"
)

// GetMonthWeeks 返回给定日期所在月份的劳动周划分，
// 前端用它来构造 generate 请求中的周边界
func (h *Handler) GetMonthWeeks(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	mw, err := schedule.WeeksOfMonth(date)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.successResponse(w, r, "获取劳动周成功", mw)
}

// GenerateShifts 校验并落库一整批排班提案。
// 批次先整体校验，再与已有记录对账，最后在一个事务里落实计划，
// 校验失败时整批拒绝，什么都不会写入。
func (h *Handler) GenerateShifts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NumWeeks       int                             `json:"numWeeks" validate:"required,oneof=4 5"`
		EmployeeShifts []schedule.EmployeeWeeklyShifts `json:"employeeShifts" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result := h.scheduler.CreateShifts(req.NumWeeks, req.EmployeeShifts)
	if !result.Success {
		h.validationErrorResponse(w, r, "排班提案校验未通过", result.Errors)
		return
	}

	// 非特殊代码的班次必须在班次目录中存在
	if err := h.resolveShiftCodes(result.Data); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	existing, err := h.loadExistingShifts(result.Data)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plan := schedule.Reconcile(result.Data, existing)

	if err := h.repository.ApplyPlan(plan); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 给发布人发一封确认邮件
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	startDate, endDate := batchDateRange(result.Data)
	mailMessage := domain.MailMessage{
		Type: "roster_published",
		To:   myInfo.Email,
		Data: domain.RosterPublishedMailData{
			FullName:  myInfo.FullName,
			StartDate: startDate,
			EndDate:   endDate,
			Created:   plan.Created,
			Updated:   plan.Updated,
		},
	}
	if err := h.publishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "排班已生成", plan)
}

func batchDateRange(validated []schedule.ValidatedWeek) (string, string) {
	start, end := "", ""
	for _, week := range validated {
		if start == "" || week.Week.Start < start {
			start = week.Week.Start
		}
		if end == "" || week.Week.End > end {
			end = week.Week.End
		}
	}
	return start, end
}

// loadExistingShifts 按员工批量读出对账所需的已持久化记录
func (h *Handler) loadExistingShifts(validated []schedule.ValidatedWeek) ([]*domain.EmployeeShift, error) {
	type dateRange struct {
		start string
		end   string
	}

	ranges := map[string]*dateRange{}
	for _, week := range validated {
		dr, exists := ranges[week.EmployeeID]
		if !exists {
			ranges[week.EmployeeID] = &dateRange{start: week.Week.Start, end: week.Week.End}
			continue
		}
		if week.Week.Start < dr.start {
			dr.start = week.Week.Start
		}
		if week.Week.End > dr.end {
			dr.end = week.Week.End
		}
	}

	existing := []*domain.EmployeeShift{}
	for employeeID, dr := range ranges {
		records, err := h.repository.FindShiftsForEmployeeInRange(employeeID, dr.start, dr.end)
		if err != nil {
			return nil, err
		}
		existing = append(existing, records...)
	}

	return existing, nil
}

// resolveShiftCodes 确认提案引用的班次代码都在目录中，
// 没有给出代码的提案按工时数兜底解析
func (h *Handler) resolveShiftCodes(validated []schedule.ValidatedWeek) error {
	known := map[string]bool{}

	for _, week := range validated {
		for i, shift := range week.Shifts {
			if h.scheduler.Rules().IsSpecialCode(shift.ShiftCode) {
				continue
			}

			if shift.ShiftCode == "" {
				st, err := h.repository.FindShiftTypeByHours(shift.Hours)
				if err != nil {
					if errors.Is(err, sql.ErrNoRows) {
						return fmt.Errorf("不存在 %d 小时的班次", shift.Hours)
					}
					return err
				}
				week.Shifts[i].ShiftCode = st.Code
				continue
			}

			if known[shift.ShiftCode] {
				continue
			}

			if _, err := h.repository.GetShiftTypeByCode(shift.ShiftCode); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("班次代码 %s 不存在", shift.ShiftCode)
				}
				return err
			}
			known[shift.ShiftCode] = true
		}
	}

	return nil
}

func (h *Handler) GetShiftsByEmployee(w http.ResponseWriter, r *http.Request) {
	numberDocument := chi.URLParam(r, "numberDocument")
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	var shifts []*domain.EmployeeShift
	var err error

	if start != "" && end != "" {
		shifts, err = h.repository.FindShiftsForEmployeeInRange(numberDocument, start, end)
	} else {
		shifts, err = h.repository.GetShiftsByEmployee(numberDocument)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工排班成功", shifts)
}

func (h *Handler) GetShiftsByDateRange(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		h.errorResponse(w, r, "必须提供 start 和 end 参数")
		return
	}

	shifts, err := h.repository.GetShiftsByDateRange(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班成功", shifts)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "排班记录ID无效")
		return
	}

	if err := h.repository.DeleteShift(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除排班记录成功", nil)
}
