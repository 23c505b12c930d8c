package obs

import (
	"io"
	"log"
	"os"
)

func InitLogging() {
	InitLoggingTo(os.Stdout)
}

// InitLoggingTo is used by tools whose stdout carries data.
func InitLoggingTo(w io.Writer) {
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
