package paygrade

import "errors"

var (
	ErrPayGradeNotFound       = errors.New("pay grade not found")
	ErrGradeCodeExists        = errors.New("grade code already exists for this job structure")
	ErrInvalidPayStructure    = errors.New("pay structure type not allowed by job structure")
	ErrUnknownComponent       = errors.New("emolument component not defined for this client")
	ErrEmptyPreview           = errors.New("preview data is empty")
	ErrPayGradeHasOfferLetter = errors.New("pay grade has an offer letter template")
)
