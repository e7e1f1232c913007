package session

import "github.com/dmitrymomot/httpkit/pkg/errkind"

var (
	// ErrActive is returned when the identity of an active session is changed.
	ErrActive = errkind.New(errkind.ErrLogic, "session.active")

	// ErrInactive is returned when data is accessed before Start or after Save.
	ErrInactive = errkind.New(errkind.ErrRuntime, "session.inactive")

	// ErrLocked is returned when another holder keeps the session id locked
	// until the context is done.
	ErrLocked = errkind.New(errkind.ErrRuntime, "session.locked")

	// ErrStartFailed is returned by Manager.Open when the backend refuses to start.
	ErrStartFailed = errkind.New(errkind.ErrRuntime, "session.start_failed")

	// ErrInvalidPayload is returned when stored session data cannot be decoded.
	ErrInvalidPayload = errkind.New(errkind.ErrRuntime, "session.invalid_payload")

	// ErrPayloadTooLarge is returned when a cookie-carried session exceeds the cookie size limit.
	ErrPayloadTooLarge = errkind.New(errkind.ErrRuntime, "session.payload_too_large")

	// ErrStoreUnavailable wraps failures of a remote store.
	ErrStoreUnavailable = errkind.New(errkind.ErrRuntime, "session.store_unavailable")

	// ErrInvalidSecret is returned for cookie storage secrets shorter than MinSecretLength.
	ErrInvalidSecret = errkind.New(errkind.ErrInvalidArgument, "session.invalid_secret")

	// ErrUnknownBackend is returned for an unsupported Config.Backend value.
	ErrUnknownBackend = errkind.New(errkind.ErrInvalidArgument, "session.unknown_backend")

	// ErrTypeMismatch is returned by Value when the stored value has another type.
	ErrTypeMismatch = errkind.New(errkind.ErrRuntime, "session.type_mismatch")
)
