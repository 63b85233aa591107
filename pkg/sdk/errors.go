package questionbank

import (
	"github.com/kailas-cloud/questionbank/internal/db"
	"github.com/kailas-cloud/questionbank/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation    = domain.ErrValidation
	ErrNotFound      = domain.ErrNotFound
	ErrIndexNotFound = db.ErrIndexNotFound
)
