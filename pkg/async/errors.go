package async

import "errors"

var (
	ErrTimeout  = errors.New("async: timed out waiting for future completion")
	ErrCanceled = errors.New("async: context done before future completion")
)
