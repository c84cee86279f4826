package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

func (h *Handler) CreateShiftType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string `json:"code" validate:"required"`
		Hours       int32  `json:"hours" validate:"min=0,max=10"`
		InitialHour string `json:"initialHour" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := &domain.ShiftType{
		Code:        req.Code,
		Hours:       req.Hours,
		InitialHour: req.InitialHour,
	}

	if err := h.repository.CreateShiftType(st); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shift_types_pkey":
			h.errorResponse(w, r, "班次代码已存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建班次成功", st)
}

func (h *Handler) GetAllShiftTypes(w http.ResponseWriter, r *http.Request) {
	shiftTypes, err := h.repository.GetAllShiftTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", shiftTypes)
}

func (h *Handler) GetShiftType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	st, err := h.repository.GetShiftTypeByCode(code)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "班次不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取班次成功", st)
}

func (h *Handler) UpdateShiftType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	st, err := h.repository.GetShiftTypeByCode(code)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "班次不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var req struct {
		Hours       *int32  `json:"hours" validate:"omitempty,min=0,max=10"`
		InitialHour *string `json:"initialHour"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Hours != nil {
		st.Hours = *req.Hours
	}
	if req.InitialHour != nil {
		st.InitialHour = *req.InitialHour
	}

	if err := h.repository.UpdateShiftType(st); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新班次成功", st)
}

func (h *Handler) DeleteShiftType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.repository.DeleteShiftType(code); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次成功", nil)
}
