package main

import (
	"os"

	"github.com/riskwatch/riskwatch/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
