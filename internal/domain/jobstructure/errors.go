package jobstructure

import "errors"

var (
	ErrJobStructureNotFound = errors.New("job structure not found")
	ErrJobCodeExists        = errors.New("job code already exists for this client")
	ErrHasDependentGrades   = errors.New("job structure has associated pay grades")
)
