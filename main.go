package main

import (
	"autopilotctl/internal/cli"
)

func main() {
	cli.Execute()
}
