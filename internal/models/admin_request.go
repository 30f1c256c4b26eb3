package models

import (
	"time"
)

// AdminRequest is a pending request for elevated access. At most one
// pending request per identity.
type AdminRequest struct {
	// ExternalID is the requesting chat platform identity
	ExternalID int64

	// Username is the requester's handle at request time
	Username string

	// RequestedAt is when the request was made
	RequestedAt time.Time
}
