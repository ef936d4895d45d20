package cmderr

import (
	"errors"
	"fmt"
	"os"
)

// ExitErr carries an explicit exit code for ExitOnErr together with the
// error that caused it.
type ExitErr struct {
	Code  int
	Cause error
}

func (x ExitErr) Error() string { return x.Cause.Error() }

// ExitOnErr writes error to os.Stderr and calls os.Exit with the carried
// exit code or 1 by default. Does nothing if err is nil.
func ExitOnErr(err error) {
	if err != nil {
		var e ExitErr
		if !errors.As(err, &e) {
			e.Code = 1
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(e.Code)
	}
}
