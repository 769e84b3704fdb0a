package attendance

import "errors"

var (
	ErrUploadNotFound     = errors.New("attendance upload not found")
	ErrUploadNotValidated = errors.New("attendance upload has not been validated")
	ErrUploadInUse        = errors.New("attendance upload is consumed by a payroll run")
	ErrNoRows             = errors.New("attendance file contains no data rows")
)
