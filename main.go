package main

import (
	"github.com/tldsplit/tldsplit/cmd"
)

func main() {
	cmd.Execute()
}
