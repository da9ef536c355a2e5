// linkdock is the companion daemon for the linkdock design tool plugin.
package main

import (
	"fmt"
	"os"

	"github.com/linkdock/linkdock/cmd"
	"github.com/linkdock/linkdock/config"
	"github.com/linkdock/linkdock/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	dir, _ := config.Dir()
	if err := logger.Init(cfg.BuildLoggerConfig(), dir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
	}
	cmd.Execute()
}
