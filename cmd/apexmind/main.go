package main

import "github.com/felixgeelhaar/apexmind/cmd/apexmind/cli"

func main() {
	cli.Execute()
}
