package admin

import (
	"context"
)

// Repository defines the interface for authorization data persistence
type Repository interface {
	// IsAdmin reports whether an identity has elevated access
	IsAdmin(ctx context.Context, input *IsAdminInput) (*IsAdminOutput, error)

	// AddAdmin grants elevated access to an identity
	AddAdmin(ctx context.Context, input *AddAdminInput) error

	// CreateAdminRequest records a pending elevation request. A second
	// request while one is pending returns ErrRequestExists.
	CreateAdminRequest(ctx context.Context, input *CreateAdminRequestInput) error
}
