package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/arusdata/hrm-backend-go/internal/domain/employee"
	"github.com/arusdata/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rosterRepository struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) employee.RosterRepository {
	return &rosterRepository{db: db}
}

const rosterColumns = `
	e.id, e.organization_id, e.first_name, e.last_name, e.email,
	e.department_id, d.name AS department_name,
	e.designation_id, g.name AS designation_name,
	e.shift_id, s.name AS shift_name, s.start_time, s.end_time,
	e.reporting_manager_id, e.status, e.joining_date`

const rosterJoins = `
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN designations g ON g.id = e.designation_id
	LEFT JOIN shifts s ON s.id = e.shift_id`

func scanRosterEntry(row pgx.Row, entry *employee.RosterEntry) error {
	return row.Scan(
		&entry.ID,
		&entry.OrganizationID,
		&entry.FirstName,
		&entry.LastName,
		&entry.Email,
		&entry.DepartmentID,
		&entry.DepartmentName,
		&entry.DesignationID,
		&entry.DesignationName,
		&entry.ShiftID,
		&entry.ShiftName,
		&entry.ShiftStart,
		&entry.ShiftEnd,
		&entry.ReportingManagerID,
		&entry.Status,
		&entry.JoiningDate,
	)
}

// GetByID implements employee.RosterRepository.
func (r *rosterRepository) GetByID(ctx context.Context, id string, organizationID string) (employee.RosterEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + rosterColumns + rosterJoins + `
		WHERE e.id = $1 AND e.organization_id = $2
	`

	var entry employee.RosterEntry
	if err := scanRosterEntry(q.QueryRow(ctx, query, id, organizationID), &entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.RosterEntry{}, employee.ErrEmployeeNotFound
		}
		return employee.RosterEntry{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return entry, nil
}

// GetShiftByID implements employee.RosterRepository.
func (r *rosterRepository) GetShiftByID(ctx context.Context, id string, organizationID string) (employee.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, name, start_time, end_time
		FROM shifts
		WHERE id = $1 AND organization_id = $2
	`

	var shift employee.Shift
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&shift.ID,
		&shift.OrganizationID,
		&shift.Name,
		&shift.StartTime,
		&shift.EndTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Shift{}, employee.ErrShiftNotFound
		}
		return employee.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return shift, nil
}

// GetReportingManager implements employee.RosterRepository.
func (r *rosterRepository) GetReportingManager(ctx context.Context, employeeID string, organizationID string) (*string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT reporting_manager_id
		FROM employees
		WHERE id = $1 AND organization_id = $2
	`

	var managerID *string
	if err := q.QueryRow(ctx, query, employeeID, organizationID).Scan(&managerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get reporting manager: %w", err)
	}

	return managerID, nil
}
