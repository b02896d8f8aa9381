package main

import "github.com/nfrund/wabridge/cmd/wabridge-cli/cmd"

func main() {
	cmd.Execute()
}
