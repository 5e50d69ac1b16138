// Hotspot ranks the files of a Git repository by recent bug-fix activity.
package main

import (
	"os"

	"github.com/bekerk/hotspot/cmd"
	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	iocache.CloseCaching()

	if err != nil {
		contract.Logger().WithError(err).Error("hotspot failed")
		os.Exit(1)
	}
}
