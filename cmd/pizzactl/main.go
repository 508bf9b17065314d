package main

import "github.com/mcoot/pizzeria/internal/cli"

func main() {
	cli.Execute()
}
