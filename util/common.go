package util

import (
	"github.com/tldsplit/tldsplit/log"
)

// LogOnError logs the message only if error is not nil
func LogOnError(prefix string, err error) {
	if err != nil {
		log.Log().Error(prefix, err)
	}
}

// FatalOnError logs the message only if error is not nil and exits the program execution
func FatalOnError(prefix string, err error) {
	if err != nil {
		log.Log().Fatal(prefix, err)
	}
}
