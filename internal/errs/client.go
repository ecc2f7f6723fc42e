package errs

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned by user-triggered operations when no valid
// credentials are available.
var ErrNoSession = errors.New("please sign in again")

// RequestError is a non-2xx response from the savings backend.
type RequestError struct {
	Op      string
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericRequestMessage(e.Status)
}

// GenericRequestMessage is the fallback text when the backend body carries nothing useful.
func GenericRequestMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}

// Status returns the HTTP status of a RequestError anywhere in err's chain, or 0.
func Status(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}
