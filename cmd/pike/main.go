package main

import "github.com/krelba/pike/cmd/pike/cmd"

func main() {
	cmd.Execute()
}
