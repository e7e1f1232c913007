package request

import "github.com/dmitrymomot/httpkit/pkg/errkind"

var ErrParseBody = errkind.New(errkind.ErrRuntime, "request.parse_body_failed")
