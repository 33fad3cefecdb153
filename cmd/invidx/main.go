package main

import "invidx/internal/cli"

func main() {
	cli.Execute()
}
