package response

import "github.com/dmitrymomot/httpkit/pkg/errkind"

var (
	ErrInvalidStatusCode = errkind.New(errkind.ErrInvalidArgument, "response.invalid_status_code")
	ErrNotRedirect       = errkind.New(errkind.ErrInvalidArgument, "response.not_redirect_status")
	ErrInvalidCharset    = errkind.New(errkind.ErrInvalidArgument, "response.invalid_charset")
	ErrEncodingFailed    = errkind.New(errkind.ErrRuntime, "response.encoding_failed")
	ErrWriteFailed       = errkind.New(errkind.ErrRuntime, "response.write_failed")
	ErrInterimStatus     = errkind.New(errkind.ErrInvalidArgument, "response.interim_status")
)
