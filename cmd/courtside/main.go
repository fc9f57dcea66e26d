package main

import (
	"github.com/courtside/courtside/internal/cli"
)

func main() {
	cli.Execute()
}
