package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/arusdata/hrm-backend-go/internal/domain/attendance"
	"github.com/arusdata/hrm-backend-go/internal/domain/employee"
	"github.com/arusdata/hrm-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEmployee(t *testing.T, s *TestDatabaseSetup, ctx context.Context, orgID, firstName string, managerID *string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := s.DB.Exec(ctx, `
		INSERT INTO employees (id, organization_id, first_name, last_name, email, reporting_manager_id, status, joining_date)
		VALUES ($1, $2, $3, 'Test', $4, $5, 'active', '2020-01-01')
	`, id, orgID, firstName, firstName+"@example.com", managerID)
	require.NoError(t, err)
	return id
}

func seedLeave(t *testing.T, s *TestDatabaseSetup, ctx context.Context, orgID, employeeID string, start, end string) {
	t.Helper()
	_, err := s.DB.Exec(ctx, `
		INSERT INTO leaves (id, organization_id, employee_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), orgID, employeeID, start, end)
	require.NoError(t, err)
}

func checkedInRecord(orgID, employeeID string, date time.Time) attendance.Attendance {
	checkIn := date.Add(9 * time.Hour)
	lat, lon := -6.2, 106.8
	photo := "https://cdn.example.com/in.jpg"
	return attendance.Attendance{
		ID:               uuid.NewString(),
		OrganizationID:   orgID,
		EmployeeID:       employeeID,
		Date:             date,
		CheckIn:          &checkIn,
		CheckInLatitude:  &lat,
		CheckInLongitude: &lon,
		CheckInPhoto:     &photo,
		Status:           attendance.StatusPresent,
		ApprovalStatus:   attendance.ApprovalPending,
	}
}

func TestAttendanceRepository_Create_DuplicateDay(t *testing.T) {
	s := NewTestDatabase(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.TruncateAllTables(ctx))

	orgID := uuid.NewString()
	empID := seedEmployee(t, s, ctx, orgID, "Ann", nil)
	repo := postgresql.NewAttendanceRepository(s.DB)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, checkedInRecord(orgID, empID, date))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, checkedInRecord(orgID, empID, date))
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
}

func TestAttendanceRepository_CheckOutRoundTrip(t *testing.T) {
	s := NewTestDatabase(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.TruncateAllTables(ctx))

	orgID := uuid.NewString()
	empID := seedEmployee(t, s, ctx, orgID, "Ann", nil)
	repo := postgresql.NewAttendanceRepository(s.DB)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, checkedInRecord(orgID, empID, date))
	require.NoError(t, err)

	checkOut := created.CheckIn.Add(8*time.Hour + 30*time.Minute)
	workHours := 8.5
	created.CheckOut = &checkOut
	created.WorkHours = &workHours
	require.NoError(t, repo.UpdateCheckOut(ctx, created))

	got, err := repo.GetByID(ctx, created.ID, orgID)
	require.NoError(t, err)
	require.NotNil(t, got.WorkHours)
	assert.InDelta(t, 8.5, *got.WorkHours, 0.001)
	require.NotNil(t, got.CheckOut)

	// tenant isolation
	_, err = repo.GetByID(ctx, created.ID, uuid.NewString())
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_DayRoster_SynthesizesStatuses(t *testing.T) {
	s := NewTestDatabase(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.TruncateAllTables(ctx))

	orgID := uuid.NewString()
	present := seedEmployee(t, s, ctx, orgID, "Ann", nil)
	onLeave := seedEmployee(t, s, ctx, orgID, "Bo", nil)
	unmarked := seedEmployee(t, s, ctx, orgID, "Cal", nil)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	seedLeave(t, s, ctx, orgID, onLeave, "2026-08-30", "2026-09-02")

	repo := postgresql.NewAttendanceRepository(s.DB)
	_, err := repo.Create(ctx, checkedInRecord(orgID, present, date))
	require.NoError(t, err)

	rows, total, err := repo.DayRoster(ctx, attendance.DayRosterFilter{
		Date: date, Page: 1, Limit: 10,
	}, orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)

	// ordered by first name: Ann, Bo, Cal
	byID := map[string]attendance.DayRosterRow{}
	for _, row := range rows {
		byID[row.EmployeeID] = row
	}
	assert.Equal(t, attendance.StatusPresent, byID[present].Status)
	assert.Equal(t, attendance.StatusLeave, byID[onLeave].Status)
	assert.Equal(t, attendance.StatusNotSet, byID[unmarked].Status)
	assert.Equal(t, "Ann", rows[0].FirstName)
	assert.Nil(t, byID[unmarked].AttendanceID)

	// effective-status filter picks up the synthesized value
	notSet := attendance.StatusNotSet
	rows, total, err = repo.DayRoster(ctx, attendance.DayRosterFilter{
		Date: date, Status: &notSet, Page: 1, Limit: 10,
	}, orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, unmarked, rows[0].EmployeeID)
}

func TestAttendanceRepository_DayRoster_PagesAreDisjointAndOrdered(t *testing.T) {
	s := NewTestDatabase(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.TruncateAllTables(ctx))

	orgID := uuid.NewString()
	names := []string{"Ann", "Bo", "Cal", "Dee", "Eli"}
	for _, name := range names {
		seedEmployee(t, s, ctx, orgID, name, nil)
	}

	repo := postgresql.NewAttendanceRepository(s.DB)
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	var gotNames []string
	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		rows, total, err := repo.DayRoster(ctx, attendance.DayRosterFilter{
			Date: date, Page: page, Limit: 2,
		}, orgID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)

		for _, row := range rows {
			assert.Falsef(t, seen[row.EmployeeID], "employee %s returned on more than one page", row.FirstName)
			seen[row.EmployeeID] = true
			gotNames = append(gotNames, row.FirstName)
		}
	}

	// every employee exactly once, in first-name order across page boundaries
	assert.Equal(t, names, gotNames)

	// past the last page
	rows, total, err := repo.DayRoster(ctx, attendance.DayRosterFilter{
		Date: date, Page: 4, Limit: 2,
	}, orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, rows)
}

func TestAttendanceRepository_History_ManagerScope(t *testing.T) {
	s := NewTestDatabase(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.TruncateAllTables(ctx))

	orgID := uuid.NewString()
	manager := seedEmployee(t, s, ctx, orgID, "Meg", nil)
	report := seedEmployee(t, s, ctx, orgID, "Ann", &manager)
	outsider := seedEmployee(t, s, ctx, orgID, "Bo", nil)

	repo := postgresql.NewAttendanceRepository(s.DB)
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, checkedInRecord(orgID, report, date))
	require.NoError(t, err)
	_, err = repo.Create(ctx, checkedInRecord(orgID, outsider, date))
	require.NoError(t, err)

	start := date.AddDate(0, 0, -7)
	rows, total, err := repo.History(ctx, attendance.HistoryFilter{
		StartDate: &start, ManagerID: &manager, Page: 1, Limit: 10,
	}, orgID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, report, rows[0].EmployeeID)
}

func TestRosterRepository_GetReportingManager(t *testing.T) {
	s := NewTestDatabase(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.TruncateAllTables(ctx))

	orgID := uuid.NewString()
	manager := seedEmployee(t, s, ctx, orgID, "Meg", nil)
	report := seedEmployee(t, s, ctx, orgID, "Ann", &manager)

	repo := postgresql.NewRosterRepository(s.DB)

	got, err := repo.GetReportingManager(ctx, report, orgID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, manager, *got)

	got, err = repo.GetReportingManager(ctx, manager, orgID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = repo.GetReportingManager(ctx, uuid.NewString(), orgID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_BulkUpsert_Overwrites(t *testing.T) {
	s := NewTestDatabase(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.TruncateAllTables(ctx))

	orgID := uuid.NewString()
	empID := seedEmployee(t, s, ctx, orgID, "Ann", nil)
	repo := postgresql.NewAttendanceRepository(s.DB)

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	remarks := "marked absent during audit"

	marked, err := repo.BulkUpsert(ctx, []attendance.Attendance{{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		EmployeeID:     empID,
		Date:           date,
		Status:         attendance.StatusPresent,
		ApprovalStatus: attendance.ApprovalApproved,
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	// second upsert for the same day updates in place
	marked, err = repo.BulkUpsert(ctx, []attendance.Attendance{{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		EmployeeID:     empID,
		Date:           date,
		Status:         attendance.StatusAbsent,
		Remarks:        &remarks,
		ApprovalStatus: attendance.ApprovalApproved,
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	var count int
	var status string
	err = s.DB.QueryRow(ctx,
		`SELECT COUNT(*), MIN(status) FROM attendance WHERE employee_id = $1`, empID,
	).Scan(&count, &status)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, string(attendance.StatusAbsent), status)
}

func TestAttendanceRepository_BulkUpsert_SupersedesPendingApproval(t *testing.T) {
	s := NewTestDatabase(t)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.TruncateAllTables(ctx))

	orgID := uuid.NewString()
	empID := seedEmployee(t, s, ctx, orgID, "Ann", nil)
	repo := postgresql.NewAttendanceRepository(s.DB)

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, checkedInRecord(orgID, empID, date))
	require.NoError(t, err)
	require.Equal(t, attendance.ApprovalPending, created.ApprovalStatus)

	// an administrative correction of the same day lands approved
	marked, err := repo.BulkUpsert(ctx, []attendance.Attendance{{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		EmployeeID:     empID,
		Date:           date,
		Status:         attendance.StatusAbsent,
		ApprovalStatus: attendance.ApprovalApproved,
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	got, err := repo.GetByID(ctx, created.ID, orgID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, got.Status)
	assert.Equal(t, attendance.ApprovalApproved, got.ApprovalStatus)
}
