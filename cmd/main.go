package main

import (
	"os"

	// exchange time zones must resolve on hosts without tzdata
	_ "time/tzdata"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
