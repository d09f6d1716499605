package main

import (
	"os"

	"playstore-analytics/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
