package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/schedule"
)

func scanEmployeeShifts(rows *sql.Rows) ([]*domain.EmployeeShift, error) {
	shifts := make([]*domain.EmployeeShift, 0)
	for rows.Next() {
		es := &domain.EmployeeShift{}
		dst := []any{&es.ID, &es.NumberDocument, &es.ShiftDate, &es.ShiftCode, &es.Break, &es.CreatedAt, &es.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, es)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// FindShiftsForEmployeeInRange 读取某个员工在日期区间内已持久化的排班记录，
// 对账引擎用它作为比对基准
func (r *Repository) FindShiftsForEmployeeInRange(numberDocument string, start, end string) ([]*domain.EmployeeShift, error) {
	query := `
		SELECT id, number_document, shift_date, shift_code, break_duration, created_at, version
		FROM employee_shifts
		WHERE number_document = $1 AND shift_date BETWEEN $2 AND $3
		ORDER BY shift_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, numberDocument, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEmployeeShifts(rows)
}

func (r *Repository) GetShiftsByEmployee(numberDocument string) ([]*domain.EmployeeShift, error) {
	query := `
		SELECT id, number_document, shift_date, shift_code, break_duration, created_at, version
		FROM employee_shifts
		WHERE number_document = $1
		ORDER BY shift_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, numberDocument)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEmployeeShifts(rows)
}

func (r *Repository) GetShiftsByDateRange(start, end string) ([]*domain.EmployeeShift, error) {
	query := `
		SELECT id, number_document, shift_date, shift_code, break_duration, created_at, version
		FROM employee_shifts
		WHERE shift_date BETWEEN $1 AND $2
		ORDER BY shift_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEmployeeShifts(rows)
}

// UpsertShift 以幂等的方式写入一条排班记录。
// 并发写入同一 (number_document, shift_date) 不需要调用方解读唯一键冲突，
// ON CONFLICT 直接把插入转成更新。
func (r *Repository) UpsertShift(es *domain.EmployeeShift) error {
	query := `
		INSERT INTO employee_shifts (number_document, shift_date, shift_code, break_duration)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (number_document, shift_date) DO UPDATE
		SET
			shift_code = EXCLUDED.shift_code,
			break_duration = EXCLUDED.break_duration,
			version = employee_shifts.version + 1
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{es.NumberDocument, es.ShiftDate, es.ShiftCode, es.Break}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&es.ID, &es.CreatedAt, &es.Version); err != nil {
		return err
	}

	return nil
}

// ApplyPlan 在单个事务中落实对账计划。
// skip 动作只计数，create/update 都走同一条幂等 upsert
func (r *Repository) ApplyPlan(plan *schedule.Plan) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO employee_shifts (number_document, shift_date, shift_code, break_duration)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (number_document, shift_date) DO UPDATE
		SET
			shift_code = EXCLUDED.shift_code,
			break_duration = EXCLUDED.break_duration,
			version = employee_shifts.version + 1
	`

	for _, action := range plan.Actions {
		if action.Type == schedule.ActionSkip {
			continue
		}

		args := []any{action.NumberDocument, action.ShiftDate, action.ShiftCode, action.Break}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM employee_shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
