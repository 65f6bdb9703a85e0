package main

import (
	"github.com/stockagent/datapipe/cmd"
)

func main() {
	cmd.Execute()
}
