package main

import (
	"os"

	"regress/harness"
	"regress/suite"
)

var version = "dev"

func main() {
	os.Exit(harness.Run(os.Args[1:], suite.Default, version))
}
