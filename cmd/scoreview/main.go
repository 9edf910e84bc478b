package main

import "scoreview/internal/cli"

func main() {
	cli.Execute()
}
