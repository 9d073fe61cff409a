package main

import (
	"github.com/fabricsim/fabricsim/cmd"
)

func main() {
	cmd.Execute()
}
