package main

import (
	"context"

	"AspectScanner/cmd/aspectscanner/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
