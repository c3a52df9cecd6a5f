package main

import (
	"log"

	"github.com/denchenko/usergrid/internal/adapters"
	"github.com/denchenko/usergrid/internal/config"
	"github.com/denchenko/usergrid/internal/core"
	ulog "github.com/denchenko/usergrid/internal/log"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func main() {
	injector := do.New(
		config.Package,
		ulog.Package,
		core.Package,
		adapters.SecondaryPackage,
		adapters.PrimaryPackage,
	)

	cmd, err := do.Invoke[*cobra.Command](injector)
	if err != nil {
		log.Fatalf("failed to create CLI command: %v", err)
	}

	err = cmd.Execute()
	adapters.Close(injector)

	if err != nil {
		log.Fatal(err)
	}
}
