package main

import (
	"subtrellis/cmd"
)

func main() {
	cmd.Execute()
}
