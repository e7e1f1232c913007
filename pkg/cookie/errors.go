package cookie

import "github.com/dmitrymomot/httpkit/pkg/errkind"

var (
	ErrEmptyName       = errkind.New(errkind.ErrInvalidArgument, "cookie.empty_name")
	ErrInvalidExpire   = errkind.New(errkind.ErrInvalidArgument, "cookie.invalid_expire")
	ErrInvalidSameSite = errkind.New(errkind.ErrInvalidArgument, "cookie.invalid_same_site")
)
