package main

import "github.com/Rorical/cadcopilot/cmd"

func main() {
	cmd.Execute()
}
