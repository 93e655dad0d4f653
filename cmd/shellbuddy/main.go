package main

import "shellbuddy/internal/cli"

func main() {
	cli.Execute()
}
