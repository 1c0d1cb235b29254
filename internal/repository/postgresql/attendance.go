package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arusdata/hrm-backend-go/internal/domain/attendance"
	"github.com/arusdata/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.organization_id, a.employee_id, a.shift_id, a.date,
	a.check_in, a.check_in_latitude, a.check_in_longitude, a.check_in_photo,
	a.check_out, a.check_out_latitude, a.check_out_longitude, a.check_out_photo,
	a.work_hours, a.status, a.approval_status,
	a.approved_by, a.approval_date, a.rejection_reason,
	a.remarks, a.created_by, a.updated_by, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, att *attendance.Attendance, withJoins bool) error {
	dest := []interface{}{
		&att.ID, &att.OrganizationID, &att.EmployeeID, &att.ShiftID, &att.Date,
		&att.CheckIn, &att.CheckInLatitude, &att.CheckInLongitude, &att.CheckInPhoto,
		&att.CheckOut, &att.CheckOutLatitude, &att.CheckOutLongitude, &att.CheckOutPhoto,
		&att.WorkHours, &att.Status, &att.ApprovalStatus,
		&att.ApprovedBy, &att.ApprovalDate, &att.RejectionReason,
		&att.Remarks, &att.CreatedBy, &att.UpdatedBy, &att.CreatedAt, &att.UpdatedAt,
	}
	if withJoins {
		dest = append(dest, &att.EmployeeFirstName, &att.EmployeeLastName, &att.ShiftName)
	}
	return row.Scan(dest...)
}

// isUniqueViolation reports whether err is a duplicate-key failure
// (SQLSTATE 23505), the backstop for concurrent check-ins.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (
			id, organization_id, employee_id, shift_id, date,
			check_in, check_in_latitude, check_in_longitude, check_in_photo,
			status, approval_status, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.OrganizationID,
		att.EmployeeID,
		att.ShiftID,
		att.Date,
		att.CheckIn,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.CheckInPhoto,
		att.Status,
		att.ApprovalStatus,
		att.CreatedBy,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, organizationID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `,
			e.first_name, e.last_name,
			s.name AS shift_name
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shifts s ON s.id = a.shift_id
		WHERE a.id = $1 AND a.organization_id = $2
	`

	var att attendance.Attendance
	err := scanAttendance(q.QueryRow(ctx, query, id, organizationID), &att, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// ExistsForDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ExistsForDate(ctx context.Context, employeeID string, date time.Time, organizationID string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendance
			WHERE employee_id = $1
			  AND date = $2
			  AND organization_id = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, organizationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}

	return exists, nil
}

// UpdateCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCheckOut(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET check_out = $1,
		    check_out_latitude = $2,
		    check_out_longitude = $3,
		    check_out_photo = $4,
		    work_hours = $5,
		    updated_by = $6,
		    updated_at = NOW()
		WHERE id = $7 AND organization_id = $8
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.CheckOut,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
		att.CheckOutPhoto,
		att.WorkHours,
		att.UpdatedBy,
		att.ID,
		att.OrganizationID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update check-out: %w", err)
	}

	return nil
}

// UpdateApproval implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateApproval(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET approval_status = $1,
		    approved_by = $2,
		    approval_date = $3,
		    rejection_reason = $4,
		    updated_by = $5,
		    updated_at = NOW()
		WHERE id = $6 AND organization_id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.ApprovalStatus,
		att.ApprovedBy,
		att.ApprovalDate,
		att.RejectionReason,
		att.UpdatedBy,
		att.ID,
		att.OrganizationID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update approval: %w", err)
	}

	return nil
}

// DayRoster implements attendance.AttendanceRepository. Every active
// employee who had joined by the given day appears exactly once; the
// effective status falls back to 'leave' when an approved leave spans the
// day, and 'not_set' otherwise.
func (a *attendanceRepository) DayRoster(ctx context.Context, filter attendance.DayRosterFilter, organizationID string) ([]attendance.DayRosterRow, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseFrom := `
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		LEFT JOIN designations g ON g.id = e.designation_id
		LEFT JOIN shifts s ON s.id = e.shift_id
		LEFT JOIN attendance a ON a.employee_id = e.id AND a.organization_id = e.organization_id AND a.date = $1
		LEFT JOIN leaves l ON l.employee_id = e.id AND $1 BETWEEN l.start_date AND l.end_date
		WHERE e.organization_id = $2
		  AND e.status = 'active'
		  AND e.joining_date <= $1`

	const effectiveStatus = `COALESCE(a.status, CASE WHEN l.id IS NOT NULL THEN 'leave' ELSE 'not_set' END)`

	args := []interface{}{filter.Date, organizationID}
	argIdx := 3

	var conds []string
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		conds = append(conds, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.DesignationID != nil && *filter.DesignationID != "" {
		conds = append(conds, fmt.Sprintf("e.designation_id = $%d", argIdx))
		args = append(args, *filter.DesignationID)
		argIdx++
	}
	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		conds = append(conds, fmt.Sprintf("(e.first_name ILIKE $%d OR e.last_name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}
	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("%s = $%d", effectiveStatus, argIdx))
		args = append(args, string(*filter.Status))
		argIdx++
	}

	whereExtra := ""
	if len(conds) > 0 {
		whereExtra = " AND " + strings.Join(conds, " AND ")
	}

	countQuery := "SELECT COUNT(*)" + baseFrom + whereExtra
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count day roster: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			e.id AS employee_id,
			e.first_name,
			e.last_name,
			e.email,
			d.name AS department_name,
			g.name AS designation_name,
			s.name AS shift_name,
			a.id AS attendance_id,
			a.check_in,
			a.check_out,
			a.work_hours,
			%s AS status,
			a.approval_status
		%s %s
		ORDER BY e.first_name ASC, e.id ASC
		LIMIT $%d OFFSET $%d
	`, effectiveStatus, baseFrom, whereExtra, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query day roster: %w", err)
	}
	defer rows.Close()

	var result []attendance.DayRosterRow
	for rows.Next() {
		var row attendance.DayRosterRow
		err := rows.Scan(
			&row.EmployeeID,
			&row.FirstName,
			&row.LastName,
			&row.Email,
			&row.DepartmentName,
			&row.DesignationName,
			&row.ShiftName,
			&row.AttendanceID,
			&row.CheckIn,
			&row.CheckOut,
			&row.WorkHours,
			&row.Status,
			&row.ApprovalStatus,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan day roster row: %w", err)
		}
		result = append(result, row)
	}

	return result, total, nil
}

// History implements attendance.AttendanceRepository. Only persisted rows
// are reported; no synthetic statuses in this mode.
func (a *attendanceRepository) History(ctx context.Context, filter attendance.HistoryFilter, organizationID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.organization_id = $1"
	args := []interface{}{organizationID}
	argIdx := 2

	if filter.ManagerID != nil {
		baseWhere += fmt.Sprintf(" AND e.reporting_manager_id = $%d", argIdx)
		args = append(args, *filter.ManagerID)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.ApprovalStatus != nil {
		baseWhere += fmt.Sprintf(" AND a.approval_status = $%d", argIdx)
		args = append(args, string(*filter.ApprovalStatus))
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance history: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT`+attendanceColumns+`,
			e.first_name, e.last_name,
			s.name AS shift_name
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shifts s ON s.id = a.shift_id
		WHERE %s
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance history: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, true); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}

	return result, total, nil
}

// BulkUpsert implements attendance.AttendanceRepository. The caller wraps
// this in WithTransaction so the batch is fail-atomic.
func (a *attendanceRepository) BulkUpsert(ctx context.Context, records []attendance.Attendance) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (
			id, organization_id, employee_id, date, status, approval_status, remarks, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (organization_id, employee_id, date) DO UPDATE
		SET status = EXCLUDED.status,
		    remarks = EXCLUDED.remarks,
		    approval_status = EXCLUDED.approval_status,
		    updated_by = EXCLUDED.created_by,
		    updated_at = NOW()
	`

	marked := 0
	for _, rec := range records {
		if _, err := q.Exec(ctx, query,
			rec.ID,
			rec.OrganizationID,
			rec.EmployeeID,
			rec.Date,
			rec.Status,
			rec.ApprovalStatus,
			rec.Remarks,
			rec.CreatedBy,
		); err != nil {
			return 0, fmt.Errorf("failed to upsert attendance for employee %s: %w", rec.EmployeeID, err)
		}
		marked++
	}

	return marked, nil
}
