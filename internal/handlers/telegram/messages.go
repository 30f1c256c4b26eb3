package telegram

// Fixed reply texts. The dialog service reports outcomes as tagged
// results; every outbound string lives here.
const (
	msgPong = "pong"

	msgNotAuthorized      = "You are not allowed to do that."
	msgWrongArgument      = "Wrong argument. Try again."
	msgNoVenue            = "There is no game in this chat yet."
	msgSomethingWentWrong = "Something went wrong. Try again."

	msgAskLocation = "Where do you play?"
	msgAskDate     = "What day? (for example 23.04)"
	msgAskTime     = "What time? (for example 19.00)"

	msgAskTeamParams = "How many teams and players per team? (for example 2 6)"
	msgAskRatingArgs = "Send the roster position and the new rating. (for example 3 8)"
	msgAskFriendData = "Send your friend's name and rating. (for example Sanya 7.5)"

	msgFriendError = "Could not save your friend. Try again."

	msgAdminRequested        = "Your request was sent to the administrators."
	msgAdminAlreadyRequested = "You have already requested access. Hang on."

	msgAlreadyJoined  = "You are already signed up."
	msgNotOnRoster    = "You are not on the roster."
	msgNoFriendToDrop = "You have no friends on the roster."

	msgPromoted = "A spot opened up and you are in the game now!"

	// fmtLeftTheList takes the leaver's name and the remaining count
	fmtLeftTheList = "%s left the list on game day. %d players remain."
)
