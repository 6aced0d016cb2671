package commands

import (
	"os"

	"docgate/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("docgate error", "err", err.Error())
	os.Exit(1)
}
