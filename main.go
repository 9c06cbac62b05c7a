package main

import (
	"os"

	"github.com/anirudhs/quizdrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
