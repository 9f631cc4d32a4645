package main

import (
	"github.com/rajivmehta/cargoplan-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
