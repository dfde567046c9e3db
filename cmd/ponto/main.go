package main

import "github.com/mcoot/ponto/internal/cli"

func main() {
	cli.Execute()
}
