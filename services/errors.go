package services

// Typed failures returned by the room and message services. The socket
// gateway converts them to {ok:false, error} acks and the HTTP hooks map
// them to status codes, so both transports agree on the taxonomy.

// ValidationError indicates malformed or missing input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError indicates a referenced room or message does not exist
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// InvalidPasswordError indicates a room password that did not verify
type InvalidPasswordError struct {
	Message string
}

func (e *InvalidPasswordError) Error() string { return e.Message }

// ForbiddenError indicates the actor is neither the room owner nor the admin
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// ConflictError indicates a duplicate room identifier
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UserNotFoundError indicates a referenced account does not exist
type UserNotFoundError struct {
	Message string
}

func (e *UserNotFoundError) Error() string { return e.Message }
