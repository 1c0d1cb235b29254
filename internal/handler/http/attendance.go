package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/arusdata/hrm-backend-go/internal/domain/attendance"
	"github.com/arusdata/hrm-backend-go/internal/domain/auth"
	"github.com/arusdata/hrm-backend-go/internal/handler/http/response"
	"github.com/arusdata/hrm-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	BulkMark(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// caller resolves the verified identity or writes the failure response.
func caller(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return auth.Identity{}, false
	}
	return identity, true
}

// List implements AttendanceHandler. Without startDate or endDate it serves
// the single-day roster view; with either it serves the historical range
// view over recorded rows.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	filter := attendance.ListFilter{}
	query := r.URL.Query()

	strParam := func(name string) *string {
		if v := query.Get(name); v != "" {
			return &v
		}
		return nil
	}

	filter.Date = strParam("date")
	filter.StartDate = strParam("startDate")
	filter.EndDate = strParam("endDate")
	filter.EmployeeID = strParam("employeeId")
	filter.DepartmentID = strParam("departmentId")
	filter.DesignationID = strParam("designationId")
	filter.EmployeeName = strParam("employeeName")
	filter.Status = strParam("status")
	filter.ApprovalStatus = strParam("approvalStatus")

	if p := query.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			response.ValidationFailed(w, validator.ValidationErrors{
				{Field: "page", Message: "page must be a number"},
			}, "query")
			return
		}
		filter.Page = page
	}
	if l := query.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			response.ValidationFailed(w, validator.ValidationErrors{
				{Field: "limit", Message: "limit must be a number"},
			}, "query")
			return
		}
		filter.Limit = limit
	}

	result, err := h.attendanceService.List(r.Context(), identity, filter)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationFailed(w, validationErrs, "query")
			return
		}
		response.HandleError(w, err)
		return
	}

	response.OK(w, result)
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.ValidationFailed(w, validator.ValidationErrors{
			{Field: "id", Message: "id must be a valid UUID"},
		}, "params")
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-out request", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.ID = id

	result, err := h.attendanceService.CheckOut(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, result)
}

// Decide implements AttendanceHandler.
func (h *attendanceHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.ValidationFailed(w, validator.ValidationErrors{
			{Field: "id", Message: "id must be a valid UUID"},
		}, "params")
		return
	}

	var req attendance.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode approval request", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}
	req.ID = id

	result, err := h.attendanceService.Decide(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, result)
}

// BulkMark implements AttendanceHandler.
func (h *attendanceHandlerImpl) BulkMark(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req attendance.BulkMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode bulk mark request", "error", err)
		response.BadRequest(w, "Invalid request format")
		return
	}

	result, err := h.attendanceService.BulkMark(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, result)
}
