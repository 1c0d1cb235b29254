package attendance

import (
	"context"

	"github.com/arusdata/hrm-backend-go/internal/domain/auth"
)

// AttendanceService defines the attendance lifecycle, approval workflow and
// list queries. Every operation receives the verified caller identity; the
// service never reads credentials itself.
type AttendanceService interface {
	// CheckIn creates the day's attendance row for an employee.
	CheckIn(ctx context.Context, caller auth.Identity, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut completes an existing row and computes work hours.
	CheckOut(ctx context.Context, caller auth.Identity, req CheckOutRequest) (AttendanceResponse, error)

	// BulkMark upserts administrative corrections, fail-atomic per batch.
	BulkMark(ctx context.Context, caller auth.Identity, req BulkMarkRequest) (BulkMarkResponse, error)

	// Decide transitions a pending record to approved or rejected.
	Decide(ctx context.Context, caller auth.Identity, req ApprovalRequest) (AttendanceResponse, error)

	// List serves both query modes: the single-day roster view and the
	// role-scoped historical range view.
	List(ctx context.Context, caller auth.Identity, filter ListFilter) (ListResponse, error)
}
