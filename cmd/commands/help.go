package commands

import "fmt"

func HandleHelp(_ []string) {
	fmt.Print(`docgate: image resolution checks and DOCX to PDF conversion over HTTP.

Usage:

	docgate <command> [arguments]

Commands:

	run <config.yml>   start the HTTP server (and the gRPC health server when enabled)
	version            print the version
	help               print this help
`) //nolint
}
