package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when a caller-supplied value is malformed.
	InvalidArgument = ErrorKind("invalid argument")

	// Unsupported is returned when a requested option is not supported.
	Unsupported = ErrorKind("unsupported")

	// Duplicate is returned when creating an item that already exists.
	Duplicate = ErrorKind("duplicate")

	// OverflowUint128 is returned when an amount exceeds 128 bits.
	OverflowUint128 = ErrorKind("overflow uint128")

	// InvalidAmount is returned when a monetary amount is zero or malformed.
	InvalidAmount = ErrorKind("invalid amount")

	// InvalidPrice is returned when a listing price is zero or malformed.
	InvalidPrice = ErrorKind("invalid price")

	// ListingNotFound is returned when a listing is absent or no longer active.
	ListingNotFound = ErrorKind("listing not found")

	// Unauthorized is returned when the requester does not own the target record.
	Unauthorized = ErrorKind("unauthorized")

	// MintWindowClosed is returned for mint attempts after a window finalized.
	MintWindowClosed = ErrorKind("mint window closed")

	// AlreadyClaimed is returned when a one-shot bonus was already granted.
	AlreadyClaimed = ErrorKind("already claimed")

	// ProgramExhausted is returned when a capped bonus program ran out of slots.
	ProgramExhausted = ErrorKind("program exhausted")

	// CooldownActive is returned when a repeatable bonus is claimed too soon.
	CooldownActive = ErrorKind("cooldown active")

	// ResourceNotFound is returned when a view counter resource does not exist.
	ResourceNotFound = ErrorKind("resource not found")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
