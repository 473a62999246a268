package main

import "go.idset/internal/cli"

func main() {
	cli.Execute()
}
