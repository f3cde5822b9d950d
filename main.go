package main

import "github.com/notargets/monoprop/cmd"

func main() {
	cmd.Execute()
}
