package httpserver

import "github.com/dmitrymomot/httpkit/pkg/errkind"

var (
	ErrStart          = errkind.New(errkind.ErrRuntime, "httpserver.start_failed")
	ErrShutdown       = errkind.New(errkind.ErrRuntime, "httpserver.shutdown_failed")
	ErrAlreadyRunning = errkind.New(errkind.ErrLogic, "httpserver.already_running")
	ErrServerClosed   = errkind.New(errkind.ErrLogic, "httpserver.server_closed")
)
