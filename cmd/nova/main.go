package main

import "github.com/Tanmay-Kondhekar/Project-Nova/internal/cli"

func main() {
	cli.Execute()
}
