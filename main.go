package main

import "github.com/notargets/meshtopo/cmd"

func main() {
	cmd.Execute()
}
