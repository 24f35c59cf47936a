package main

import "github.com/notargets/goclaw/cmd"

func main() {
	cmd.Execute()
}
