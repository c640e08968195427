package errorx

var (
	ErrAuthenticationRequired = Error{Kind: Unauthorized, Message: "Authentication credentials were not provided"}
	ErrInvalidToken           = Error{Kind: Unauthorized, Message: "Invalid token"}
	ErrNotOwner               = Error{Kind: Forbidden, Message: "You do not have permission to perform this action"}

	ErrUserNotFound         = Error{Kind: NotFound, Message: "User not found"}
	ErrPostNotFound         = Error{Kind: NotFound, Message: "Post not found"}
	ErrCommentNotFound      = Error{Kind: NotFound, Message: "Comment not found"}
	ErrNotificationNotFound = Error{Kind: NotFound, Message: "Notification not found"}
	ErrBookNotFound         = Error{Kind: NotFound, Message: "Book not found"}
	ErrAuthorNotFound       = Error{Kind: NotFound, Message: "Author not found"}
	ErrLibraryNotFound      = Error{Kind: NotFound, Message: "Library not found"}

	ErrSelfFollow         = Error{Kind: InvalidOperation, Message: "You cannot follow yourself"}
	ErrNotLiked           = Error{Kind: Validation, Message: "Not liked yet"}
	ErrInvalidCredentials = Error{Kind: Validation, Message: "Invalid credentials"}
	ErrUsernameTaken      = Error{Kind: Validation, Message: "A user with that username already exists"}
)
