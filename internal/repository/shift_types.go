package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) GetAllShiftTypes() ([]*domain.ShiftType, error) {
	query := `
		SELECT code, hours, initial_hour, created_at, version FROM shift_types
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shiftTypes := make([]*domain.ShiftType, 0)
	for rows.Next() {
		st := &domain.ShiftType{}
		dst := []any{&st.Code, &st.Hours, &st.InitialHour, &st.CreatedAt, &st.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shiftTypes = append(shiftTypes, st)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shiftTypes, nil
}

func (r *Repository) GetShiftTypeByCode(code string) (*domain.ShiftType, error) {
	query := `
		SELECT hours, initial_hour, created_at, version FROM shift_types WHERE code = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	st := &domain.ShiftType{
		Code: code,
	}

	dst := []any{&st.Hours, &st.InitialHour, &st.CreatedAt, &st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, code).Scan(dst...); err != nil {
		return nil, err
	}

	return st, nil
}

// FindShiftTypeByHours 在班次目录中找到第一个符合工时数的班次代码，
// 提案没有显式给出 shiftCode 时用它兜底
func (r *Repository) FindShiftTypeByHours(hours int32) (*domain.ShiftType, error) {
	query := `
		SELECT code, hours, initial_hour, created_at, version
		FROM shift_types WHERE hours = $1
		ORDER BY code
		LIMIT 1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	st := &domain.ShiftType{}
	dst := []any{&st.Code, &st.Hours, &st.InitialHour, &st.CreatedAt, &st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, hours).Scan(dst...); err != nil {
		return nil, err
	}

	return st, nil
}

func (r *Repository) CreateShiftType(st *domain.ShiftType) error {
	query := `
		INSERT INTO shift_types (code, hours, initial_hour)
		VALUES ($1, $2, $3)
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{st.Code, st.Hours, st.InitialHour}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.CreatedAt, &st.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShiftType(st *domain.ShiftType) error {
	query := `
		UPDATE shift_types
		SET
			hours = $1,
			initial_hour = $2,
			version = version + 1
		WHERE code = $3 AND version = $4
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{st.Hours, st.InitialHour, st.Code, st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.CreatedAt, &st.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShiftType(code string) error {
	query := `
		DELETE FROM shift_types WHERE code = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, code); err != nil {
		return err
	}

	return nil
}
