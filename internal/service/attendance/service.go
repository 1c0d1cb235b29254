package attendance

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/arusdata/hrm-backend-go/internal/config"
	"github.com/arusdata/hrm-backend-go/internal/domain/attendance"
	"github.com/arusdata/hrm-backend-go/internal/domain/auth"
	"github.com/arusdata/hrm-backend-go/internal/domain/employee"
	"github.com/arusdata/hrm-backend-go/internal/domain/leave"
	"github.com/arusdata/hrm-backend-go/internal/domain/user"
	"github.com/arusdata/hrm-backend-go/internal/pkg/database"
	"github.com/arusdata/hrm-backend-go/internal/pkg/geo"
	"github.com/arusdata/hrm-backend-go/internal/pkg/validator"
	"github.com/arusdata/hrm-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	db  *database.DB
	cfg config.AttendanceConfig

	attendance.AttendanceRepository
	employee.RosterRepository
	leave.LeaveRepository

	// runInTx is swapped for a pass-through in tests.
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	cfg config.AttendanceConfig,
	attendanceRepo attendance.AttendanceRepository,
	rosterRepo employee.RosterRepository,
	leaveRepo leave.LeaveRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		cfg:                  cfg,
		AttendanceRepository: attendanceRepo,
		RosterRepository:     rosterRepo,
		LeaveRepository:      leaveRepo,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// timePtrToRFC3339 safely converts a *time.Time to a wire string.
func timePtrToRFC3339(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func locationPtr(lat, lon *float64) *attendance.Location {
	if lat == nil || lon == nil {
		return nil
	}
	return &attendance.Location{Latitude: *lat, Longitude: *lon}
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:               att.ID,
		EmployeeID:       att.EmployeeID,
		EmployeeName:     att.EmployeeName(),
		ShiftID:          att.ShiftID,
		ShiftName:        att.ShiftName,
		Date:             att.Date.Format("2006-01-02"),
		CheckIn:          timePtrToRFC3339(att.CheckIn),
		CheckOut:         timePtrToRFC3339(att.CheckOut),
		CheckInLocation:  locationPtr(att.CheckInLatitude, att.CheckInLongitude),
		CheckOutLocation: locationPtr(att.CheckOutLatitude, att.CheckOutLongitude),
		CheckInPhoto:     att.CheckInPhoto,
		CheckOutPhoto:    att.CheckOutPhoto,
		WorkHours:        att.WorkHours,
		Status:           att.Status,
		ApprovalStatus:   string(att.ApprovalStatus),
		ApprovedBy:       att.ApprovedBy,
		ApprovalDate:     timePtrToRFC3339(att.ApprovalDate),
		RejectionReason:  att.RejectionReason,
		Remarks:          att.Remarks,
	}
}

// withinOfficeRadius applies the configured office proximity policy. When no
// office location is configured the check passes.
func (a *AttendanceServiceImpl) withinOfficeRadius(loc attendance.Location) bool {
	if a.cfg.OfficeLatitude == nil || a.cfg.OfficeLongitude == nil {
		return true
	}
	return geo.WithinRadius(
		loc.Latitude, loc.Longitude,
		*a.cfg.OfficeLatitude, *a.cfg.OfficeLongitude,
		a.cfg.OfficeRadiusMeters,
	)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, caller auth.Identity, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !user.HasPermission(caller.Role, user.PermissionAttendanceCheckIn) {
		return attendance.AttendanceResponse{}, user.ErrInsufficientPermissions
	}
	if req.EmployeeID != caller.EmployeeID && !user.CanViewAll(caller.Role) {
		return attendance.AttendanceResponse{}, auth.ErrForbidden
	}

	date, _ := validator.IsValidDate(req.Date)
	checkInTime, _ := validator.IsValidDateTime(req.CheckInTime)

	if req.Date != time.Now().Format("2006-01-02") {
		return attendance.AttendanceResponse{}, attendance.ErrCheckInNotToday
	}

	if !a.withinOfficeRadius(req.CheckInLocation) {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideOfficeRadius
	}

	emp, err := a.RosterRepository.GetByID(ctx, req.EmployeeID, caller.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	onLeave, err := a.LeaveRepository.FindOverlapping(ctx, req.EmployeeID, date, caller.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if onLeave != nil {
		return attendance.AttendanceResponse{}, attendance.ErrEmployeeOnLeave
	}

	// A request may name a shift other than the assigned one; lateness is
	// judged against whichever shift the record ends up on.
	shiftID := emp.ShiftID
	shiftName := emp.ShiftName
	shiftStart := emp.ShiftStart
	if req.ShiftID != nil && (emp.ShiftID == nil || *req.ShiftID != *emp.ShiftID) {
		shift, err := a.RosterRepository.GetShiftByID(ctx, *req.ShiftID, caller.OrganizationID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		id := shift.ID
		name := shift.Name
		shiftID = &id
		shiftName = &name
		shiftStart = shift.StartTime
	}

	grace := time.Duration(a.cfg.LateThresholdMinutes) * time.Minute
	status := CalculateStatus(checkInTime, shiftStart, grace)

	att := attendance.Attendance{
		ID:               uuid.NewString(),
		OrganizationID:   caller.OrganizationID,
		EmployeeID:       req.EmployeeID,
		ShiftID:          shiftID,
		Date:             date,
		CheckIn:          &checkInTime,
		CheckInLatitude:  &req.CheckInLocation.Latitude,
		CheckInLongitude: &req.CheckInLocation.Longitude,
		CheckInPhoto:     &req.CheckInPhoto,
		Status:           status,
		ApprovalStatus:   attendance.ApprovalPending,
		CreatedBy:        &caller.UserID,
	}

	err = a.runInTx(ctx, func(txCtx context.Context) error {
		exists, err := a.AttendanceRepository.ExistsForDate(txCtx, req.EmployeeID, date, caller.OrganizationID)
		if err != nil {
			return err
		}
		if exists {
			return attendance.ErrDuplicateRecord
		}

		att, err = a.AttendanceRepository.Create(txCtx, att)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	firstName, lastName := emp.FirstName, emp.LastName
	att.EmployeeFirstName = &firstName
	att.EmployeeLastName = &lastName
	att.ShiftName = shiftName

	return toResponse(att), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, caller auth.Identity, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID, caller.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if att.EmployeeID != caller.EmployeeID && !user.CanViewAll(caller.Role) {
		return attendance.AttendanceResponse{}, auth.ErrForbidden
	}

	if att.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if att.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOutTime, _ := validator.IsValidDateTime(req.CheckOutTime)
	if checkOutTime.Before(*att.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	if !a.withinOfficeRadius(req.CheckOutLocation) {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideOfficeRadius
	}

	workHours := WorkHours(*att.CheckIn, checkOutTime)

	att.CheckOut = &checkOutTime
	att.CheckOutLatitude = &req.CheckOutLocation.Latitude
	att.CheckOutLongitude = &req.CheckOutLocation.Longitude
	att.CheckOutPhoto = &req.CheckOutPhoto
	att.WorkHours = &workHours
	att.UpdatedBy = &caller.UserID

	if err := a.AttendanceRepository.UpdateCheckOut(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(att), nil
}

// BulkMark implements attendance.AttendanceService. The batch is fail-atomic:
// one bad entry rolls back every row.
func (a *AttendanceServiceImpl) BulkMark(ctx context.Context, caller auth.Identity, req attendance.BulkMarkRequest) (attendance.BulkMarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkResponse{}, err
	}

	if !user.HasPermission(caller.Role, user.PermissionAttendanceBulk) {
		return attendance.BulkMarkResponse{}, user.ErrInsufficientPermissions
	}

	var marked int
	err := a.runInTx(ctx, func(txCtx context.Context) error {
		records := make([]attendance.Attendance, 0, len(req.Records))
		for _, entry := range req.Records {
			if _, err := a.RosterRepository.GetByID(txCtx, entry.EmployeeID, caller.OrganizationID); err != nil {
				return fmt.Errorf("employee %s: %w", entry.EmployeeID, err)
			}

			date, _ := validator.IsValidDate(entry.Date)
			records = append(records, attendance.Attendance{
				ID:             uuid.NewString(),
				OrganizationID: caller.OrganizationID,
				EmployeeID:     entry.EmployeeID,
				Date:           date,
				Status:         attendance.Status(entry.Status),
				ApprovalStatus: attendance.ApprovalApproved,
				Remarks:        entry.Remarks,
				CreatedBy:      &caller.UserID,
			})
		}

		var err error
		marked, err = a.AttendanceRepository.BulkUpsert(txCtx, records)
		return err
	})
	if err != nil {
		return attendance.BulkMarkResponse{}, err
	}

	return attendance.BulkMarkResponse{Marked: marked}, nil
}

// Decide implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Decide(ctx context.Context, caller auth.Identity, req attendance.ApprovalRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID, caller.OrganizationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if att.ApprovalStatus != attendance.ApprovalPending {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyDecided
	}

	if IsSelfApproval(caller, att.EmployeeID) {
		return attendance.AttendanceResponse{}, attendance.ErrSelfApproval
	}

	var managerID *string
	if !user.HasPermission(caller.Role, user.PermissionAttendanceApproveAny) {
		managerID, err = a.RosterRepository.GetReportingManager(ctx, att.EmployeeID, caller.OrganizationID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}
	if !CanApprove(caller, managerID) {
		return attendance.AttendanceResponse{}, attendance.ErrNotAuthorizedToAct
	}

	now := time.Now()
	decision := attendance.ApprovalStatus(strings.ToLower(strings.TrimSpace(req.Status)))

	att.ApprovalStatus = decision
	att.ApprovedBy = &caller.UserID
	att.ApprovalDate = &now
	att.UpdatedBy = &caller.UserID
	if decision == attendance.ApprovalRejected {
		reason := strings.TrimSpace(req.RejectionReason)
		att.RejectionReason = &reason
	} else {
		att.RejectionReason = nil
	}

	if err := a.AttendanceRepository.UpdateApproval(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(att), nil
}

// List implements attendance.AttendanceService. startDate or endDate selects
// the historical range view over persisted rows; otherwise the single-day
// roster join runs for the requested (or current) day.
func (a *AttendanceServiceImpl) List(ctx context.Context, caller auth.Identity, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	if filter.HistoryMode() {
		return a.listHistory(ctx, caller, filter)
	}
	return a.listDayRoster(ctx, caller, filter)
}

func (a *AttendanceServiceImpl) listDayRoster(ctx context.Context, caller auth.Identity, filter attendance.ListFilter) (attendance.ListResponse, error) {
	day := time.Now()
	if filter.Date != nil && *filter.Date != "" {
		day, _ = validator.IsValidDate(*filter.Date)
	} else {
		day, _ = validator.IsValidDate(day.Format("2006-01-02"))
	}

	repoFilter := attendance.DayRosterFilter{
		Date:          day,
		DepartmentID:  filter.DepartmentID,
		DesignationID: filter.DesignationID,
		EmployeeName:  filter.EmployeeName,
		Page:          filter.Page,
		Limit:         filter.Limit,
	}
	if filter.Status != nil && *filter.Status != "" {
		status := attendance.Status(*filter.Status)
		repoFilter.Status = &status
	}

	rows, total, err := a.AttendanceRepository.DayRoster(ctx, repoFilter, caller.OrganizationID)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	items := make([]attendance.ListItem, 0, len(rows))
	for _, row := range rows {
		var approval *string
		if row.ApprovalStatus != nil {
			s := string(*row.ApprovalStatus)
			approval = &s
		}
		items = append(items, attendance.ListItem{
			EmployeeID:      row.EmployeeID,
			FirstName:       row.FirstName,
			LastName:        row.LastName,
			Email:           row.Email,
			DepartmentName:  row.DepartmentName,
			DesignationName: row.DesignationName,
			ShiftName:       row.ShiftName,
			AttendanceID:    row.AttendanceID,
			Date:            day.Format("2006-01-02"),
			CheckIn:         timePtrToRFC3339(row.CheckIn),
			CheckOut:        timePtrToRFC3339(row.CheckOut),
			WorkHours:       row.WorkHours,
			Status:          row.Status,
			ApprovalStatus:  approval,
		})
	}

	return attendance.ListResponse{
		Data:       items,
		Pagination: buildPagination(total, filter.Page, filter.Limit),
	}, nil
}

func (a *AttendanceServiceImpl) listHistory(ctx context.Context, caller auth.Identity, filter attendance.ListFilter) (attendance.ListResponse, error) {
	repoFilter := attendance.HistoryFilter{
		EmployeeID: filter.EmployeeID,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		start, _ := validator.IsValidDate(*filter.StartDate)
		repoFilter.StartDate = &start
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		end, _ := validator.IsValidDate(*filter.EndDate)
		repoFilter.EndDate = &end
	}
	if filter.Status != nil && *filter.Status != "" {
		status := attendance.Status(*filter.Status)
		repoFilter.Status = &status
	}
	if filter.ApprovalStatus != nil && *filter.ApprovalStatus != "" {
		approval := attendance.ApprovalStatus(*filter.ApprovalStatus)
		repoFilter.ApprovalStatus = &approval
	}

	// Role scoping: admins and HR see everything, managers see their
	// direct reports, everyone else sees only themselves.
	if !user.CanViewAll(caller.Role) {
		if caller.Role == user.RoleManager {
			managerID := caller.EmployeeID
			repoFilter.ManagerID = &managerID
		} else {
			employeeID := caller.EmployeeID
			repoFilter.EmployeeID = &employeeID
		}
	}

	rows, total, err := a.AttendanceRepository.History(ctx, repoFilter, caller.OrganizationID)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	items := make([]attendance.ListItem, 0, len(rows))
	for _, att := range rows {
		var firstName, lastName string
		if att.EmployeeFirstName != nil {
			firstName = *att.EmployeeFirstName
		}
		if att.EmployeeLastName != nil {
			lastName = *att.EmployeeLastName
		}
		attendanceID := att.ID
		approval := string(att.ApprovalStatus)
		items = append(items, attendance.ListItem{
			EmployeeID:     att.EmployeeID,
			FirstName:      firstName,
			LastName:       lastName,
			ShiftName:      att.ShiftName,
			AttendanceID:   &attendanceID,
			Date:           att.Date.Format("2006-01-02"),
			CheckIn:        timePtrToRFC3339(att.CheckIn),
			CheckOut:       timePtrToRFC3339(att.CheckOut),
			WorkHours:      att.WorkHours,
			Status:         att.Status,
			ApprovalStatus: &approval,
		})
	}

	return attendance.ListResponse{
		Data:       items,
		Pagination: buildPagination(total, filter.Page, filter.Limit),
	}, nil
}

func buildPagination(total int64, page, limit int) attendance.Pagination {
	return attendance.Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
