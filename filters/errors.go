package filters

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedFilterValue matches any *MalformedFilterValueError.
	ErrMalformedFilterValue = errors.New("malformed filter value")

	// ErrStaleCommit is returned when newer changes were staged while a commit
	// was in flight. The commit landed, but its result is already superseded
	// by the pending buffer.
	ErrStaleCommit = errors.New("stale commit")

	// ErrNavigationAborted is returned when a navigation failed or the widget
	// was superseded by one it already requested.
	ErrNavigationAborted = errors.New("navigation aborted")
)

// MalformedFilterValueError names the query parameter that failed to decode.
type MalformedFilterValueError struct {
	Param string
	Value string
	Err   error
}

func (e *MalformedFilterValueError) Error() string {
	return fmt.Sprintf("malformed filter value for %s=%q: %v", e.Param, e.Value, e.Err)
}

func (e *MalformedFilterValueError) Unwrap() []error {
	return []error{ErrMalformedFilterValue, e.Err}
}

// MalformedParams lists the parameter names of every
// *MalformedFilterValueError joined into err, in decode order.
func MalformedParams(err error) []string {
	if err == nil {
		return nil
	}
	var params []string
	var walk func(error)
	walk = func(err error) {
		if m, ok := err.(*MalformedFilterValueError); ok {
			params = append(params, m.Param)
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
		}
	}
	walk(err)
	return params
}
