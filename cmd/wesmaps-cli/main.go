package main

import (
	"coursecatalog-backend/cmd/wesmaps-cli/commands"
	"coursecatalog-backend/pkg/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	commands.ExecuteContext(ctx)
}
