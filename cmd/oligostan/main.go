// cmd/oligostan/main.go
package main

import (
	"oligostan/internal/appshell"
	"oligostan/internal/cli"
)

func main() { appshell.Main(cli.Run) }
