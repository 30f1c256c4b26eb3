package admin

import "github.com/nurd-os/team-sorter/internal/models"

// IsAdminInput contains parameters for checking elevated access
type IsAdminInput struct {
	ExternalID int64
}

// IsAdminOutput contains the result of checking elevated access
type IsAdminOutput struct {
	IsAdmin bool
}

// AddAdminInput contains parameters for granting elevated access
type AddAdminInput struct {
	ExternalID int64
}

// CreateAdminRequestInput contains parameters for recording a pending
// elevation request
type CreateAdminRequestInput struct {
	Request *models.AdminRequest
}
