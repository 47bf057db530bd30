// main is the entry point for the teampulse CLI.
package main

import (
	"os"

	"github.com/arjaygg/teampulse/cmd"
	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/internal/iocache"
)

func main() {
	// Close store connections on shutdown
	defer iocache.CloseStores()

	// Hand the global store manager to the command layer
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}

	if err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
