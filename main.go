package main

import "github.com/fairway-tools/fairway/internal/cli"

func main() {
	cli.Execute()
}
