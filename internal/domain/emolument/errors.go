package emolument

import "errors"

var (
	ErrComponentNotFound   = errors.New("emolument component not found")
	ErrComponentCodeExists = errors.New("component code already exists for this client")
	ErrComponentReadOnly   = errors.New("universal components are read-only")
	ErrComponentInUse      = errors.New("component is referenced by pay grades")
)
