package offerletter

import "errors"

var (
	ErrTemplateNotFound = errors.New("offer letter template not found")
	ErrTemplateExists   = errors.New("offer letter template already exists for this pay grade")
	ErrUnknownVariable  = errors.New("content references an undeclared variable")
)
