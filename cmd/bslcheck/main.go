package main

import "bslcheck/internal/cli"

func main() {
	cli.Execute()
}
