package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NumberDocument  string  `json:"numberDocument" validate:"required"`
		ManagerDocument *string `json:"managerDocument"`
		FullName        string  `json:"fullName" validate:"required"`
		WorkingDay      int32   `json:"workingDay" validate:"required,oneof=16 24 36 46"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		NumberDocument:  req.NumberDocument,
		ManagerDocument: req.ManagerDocument,
		FullName:        req.FullName,
		WorkingDay:      req.WorkingDay,
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "employees_pkey":
				h.errorResponse(w, r, "该证件号的员工已存在")
			case "employees_manager_document_fkey":
				h.errorResponse(w, r, "指定的主管不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建员工成功", employee)
}

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	h.successResponse(w, r, "获取员工信息成功", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	var req struct {
		ManagerDocument *string `json:"managerDocument"`
		FullName        *string `json:"fullName"`
		WorkingDay      *int32  `json:"workingDay" validate:"omitempty,oneof=16 24 36 46"`
		IsActive        *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 工时等级变更只影响之后的批次，已持久化的排班记录不会被追溯修改
	if req.ManagerDocument != nil {
		employee.ManagerDocument = req.ManagerDocument
	}
	if req.FullName != nil {
		employee.FullName = *req.FullName
	}
	if req.WorkingDay != nil {
		employee.WorkingDay = *req.WorkingDay
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新员工成功", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(employee.NumberDocument); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除员工成功", nil)
}
