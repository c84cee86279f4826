package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/workforce-manager/backend/internal/domain"
)

func (r *Repository) GetEmployeeByDocument(numberDocument string) (*domain.Employee, error) {
	query := `
		SELECT manager_document, full_name, working_day, is_active, created_at, version
		FROM employees WHERE number_document = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		NumberDocument: numberDocument,
	}

	dst := []any{&employee.ManagerDocument, &employee.FullName, &employee.WorkingDay, &employee.IsActive, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, numberDocument).Scan(dst...); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT number_document, manager_document, full_name, working_day, is_active, created_at, version
		FROM employees
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		dst := []any{&employee.NumberDocument, &employee.ManagerDocument, &employee.FullName, &employee.WorkingDay, &employee.IsActive, &employee.CreatedAt, &employee.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	query := `
		INSERT INTO employees (number_document, manager_document, full_name, working_day)
		VALUES ($1, $2, $3, $4)
		RETURNING is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{employee.NumberDocument, employee.ManagerDocument, employee.FullName, employee.WorkingDay}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.IsActive, &employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			manager_document = $1,
			full_name = $2,
			working_day = $3,
			is_active = $4,
			version = version + 1
		WHERE number_document = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{employee.ManagerDocument, employee.FullName, employee.WorkingDay, employee.IsActive, employee.NumberDocument, employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEmployee(numberDocument string) error {
	query := `
		DELETE FROM employees WHERE number_document = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, numberDocument); err != nil {
		return err
	}

	return nil
}
