package roster

import "errors"

// Define errors
var (
	ErrVenueNotFound         = errors.New("venue not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrAlreadyJoined         = errors.New("player already signed up")
	ErrFriendNotFound        = errors.New("no guest to remove")
	ErrInvalidPosition       = errors.New("roster position out of bounds")
	ErrUnsatisfiableDivision = errors.New("not enough admitted players for the requested teams")
)
