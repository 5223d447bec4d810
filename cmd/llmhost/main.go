package main

import (
	"fmt"
	"os"

	"github.com/example/go-llm-host/internal/runtime"
)

func main() {
	err := NewRootCmd().Execute()

	shutdownErr := runtime.Shutdown()
	if shutdownErr != nil && err == nil {
		err = shutdownErr
	}

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
