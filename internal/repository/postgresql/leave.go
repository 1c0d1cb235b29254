package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arusdata/hrm-backend-go/internal/domain/leave"
	"github.com/arusdata/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// FindOverlapping implements leave.LeaveRepository.
func (l *leaveRepository) FindOverlapping(ctx context.Context, employeeID string, day time.Time, organizationID string) (*leave.Record, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, organization_id, employee_id, start_date, end_date
		FROM leaves
		WHERE employee_id = $1
		  AND organization_id = $2
		  AND $3 BETWEEN start_date AND end_date
		LIMIT 1
	`

	var rec leave.Record
	err := q.QueryRow(ctx, query, employeeID, organizationID, day).Scan(
		&rec.ID,
		&rec.OrganizationID,
		&rec.EmployeeID,
		&rec.StartDate,
		&rec.EndDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find overlapping leave: %w", err)
	}

	return &rec, nil
}
