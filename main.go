package main

import (
	"github.com/crosswatch-cli/crosswatch/cmd"
	"github.com/crosswatch-cli/crosswatch/config"
	"github.com/crosswatch-cli/crosswatch/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	for _, err := range config.Rejected {
		log.Warnf("config value ignored: %v", err)
	}

	cmd.Execute()
}
