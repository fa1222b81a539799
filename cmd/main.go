package main

import (
	"os"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/cmd/daleel"
)

func main() {
	if err := daleel.Execute(); err != nil {
		os.Exit(1)
	}
}
