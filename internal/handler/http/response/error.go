package response

import (
	"errors"
	"net/http"

	"github.com/meridianhr/payroll-backend-go/internal/domain/attendance"
	"github.com/meridianhr/payroll-backend-go/internal/domain/auth"
	"github.com/meridianhr/payroll-backend-go/internal/domain/client"
	"github.com/meridianhr/payroll-backend-go/internal/domain/emolument"
	"github.com/meridianhr/payroll-backend-go/internal/domain/employee"
	"github.com/meridianhr/payroll-backend-go/internal/domain/jobstructure"
	"github.com/meridianhr/payroll-backend-go/internal/domain/offerletter"
	"github.com/meridianhr/payroll-backend-go/internal/domain/paygrade"
	"github.com/meridianhr/payroll-backend-go/internal/domain/payrollrun"
	"github.com/meridianhr/payroll-backend-go/internal/domain/settings"
	"github.com/meridianhr/payroll-backend-go/internal/domain/user"
	"github.com/meridianhr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses with structured codes,
// so callers branch on error.code instead of matching message text.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Clients and employees
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, client.ErrClientCodeExists):
		Conflict(w, "ALREADY_EXISTS", "Client code already exists")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "ALREADY_EXISTS", "Employee code already exists")

	// Job structures
	case errors.Is(err, jobstructure.ErrJobStructureNotFound):
		NotFound(w, "Job structure not found")
	case errors.Is(err, jobstructure.ErrJobCodeExists):
		Conflict(w, "ALREADY_EXISTS", "Job code already exists for this client")
	case errors.Is(err, jobstructure.ErrHasDependentGrades):
		Conflict(w, "HAS_DEPENDENTS", "Job structure has associated pay grades")

	// Pay grades
	case errors.Is(err, paygrade.ErrPayGradeNotFound):
		NotFound(w, "Pay grade not found")
	case errors.Is(err, paygrade.ErrGradeCodeExists):
		Conflict(w, "ALREADY_EXISTS", "Grade code already exists for this job structure")
	case errors.Is(err, paygrade.ErrInvalidPayStructure):
		UnprocessableEntity(w, "INVALID_PAY_STRUCTURE", "Pay structure type not allowed by job structure")
	case errors.Is(err, paygrade.ErrUnknownComponent):
		UnprocessableEntity(w, "UNKNOWN_COMPONENT", "Emolument component not defined for this client")
	case errors.Is(err, paygrade.ErrEmptyPreview):
		BadRequest(w, "Preview data is empty", nil)
	case errors.Is(err, paygrade.ErrPayGradeHasOfferLetter):
		Conflict(w, "HAS_DEPENDENTS", "Pay grade has an offer letter template")

	// Emolument components
	case errors.Is(err, emolument.ErrComponentNotFound):
		NotFound(w, "Emolument component not found")
	case errors.Is(err, emolument.ErrComponentCodeExists):
		Conflict(w, "ALREADY_EXISTS", "Component code already exists for this client")
	case errors.Is(err, emolument.ErrComponentReadOnly):
		Forbidden(w, "Universal components are read-only")
	case errors.Is(err, emolument.ErrComponentInUse):
		Conflict(w, "HAS_DEPENDENTS", "Component is referenced by pay grades")

	// Offer letters
	case errors.Is(err, offerletter.ErrTemplateNotFound):
		NotFound(w, "Offer letter template not found")
	case errors.Is(err, offerletter.ErrTemplateExists):
		Conflict(w, "ALREADY_EXISTS", "Offer letter template already exists for this pay grade")
	case errors.Is(err, offerletter.ErrUnknownVariable):
		UnprocessableEntity(w, "UNKNOWN_VARIABLE", "Content references an undeclared variable")

	// Attendance
	case errors.Is(err, attendance.ErrUploadNotFound):
		NotFound(w, "Attendance upload not found")
	case errors.Is(err, attendance.ErrUploadNotValidated):
		UnprocessableEntity(w, "NOT_VALIDATED", "Attendance upload has not been validated")
	case errors.Is(err, attendance.ErrUploadInUse):
		Conflict(w, "UPLOAD_IN_USE", "Attendance upload is consumed by a payroll run")
	case errors.Is(err, attendance.ErrNoRows):
		BadRequest(w, "Attendance file contains no data rows", nil)

	// Payroll runs
	case errors.Is(err, payrollrun.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payrollrun.ErrRunExistsForPeriod):
		Conflict(w, "ALREADY_EXISTS", "A payroll run already exists for this period")
	case errors.Is(err, payrollrun.ErrInvalidTransition):
		Conflict(w, "INVALID_TRANSITION", "Action not allowed in current run status")
	case errors.Is(err, payrollrun.ErrNoEmployees):
		UnprocessableEntity(w, "NO_EMPLOYEES", "Client has no active employees with pay grades")
	case errors.Is(err, payrollrun.ErrAttendanceMissing):
		UnprocessableEntity(w, "ATTENDANCE_MISSING", "No validated attendance upload for this period")
	case errors.Is(err, payrollrun.ErrSettingsIncomplete):
		UnprocessableEntity(w, "SETTINGS_INCOMPLETE", "Payroll settings are incomplete")

	// Settings
	case errors.Is(err, settings.ErrSettingNotFound):
		NotFound(w, "Setting not found")
	case errors.Is(err, settings.ErrUnknownKey):
		NotFound(w, "Unknown setting key")
	case errors.Is(err, settings.ErrReasonRequired):
		UnprocessableEntity(w, "REASON_REQUIRED", "A change reason is required")
	case errors.Is(err, settings.ErrInvalidValue):
		UnprocessableEntity(w, "INVALID_VALUE", "Setting value is invalid for this key")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
