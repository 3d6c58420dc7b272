package main

import "github.com/deepakdhaka-1/polymarket-connector/cmd"

func main() {
	cmd.Execute()
}
