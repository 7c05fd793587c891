package espn

import (
	"errors"
	"fmt"
)

// RemoteUnavailableError reports a failed scoreboard or summary request.
// StatusCode is 0 when the transport itself failed.
type RemoteUnavailableError struct {
	StatusCode int
	Excerpt    string
	Err        error
}

func (e *RemoteUnavailableError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("ESPN request failed: %s", e.Excerpt)
	}
	if e.Excerpt == "" {
		return fmt.Sprintf("ESPN request failed (%d)", e.StatusCode)
	}
	return fmt.Sprintf("ESPN request failed (%d) %s", e.StatusCode, e.Excerpt)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return e.Err
}

// AsRemoteUnavailable attempts to unwrap err into a RemoteUnavailableError.
func AsRemoteUnavailable(err error) (*RemoteUnavailableError, bool) {
	var remoteErr *RemoteUnavailableError
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}
	return nil, false
}
