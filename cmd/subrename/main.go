package main

import "github.com/mydehq/subrename/internal/cli"

func main() {
	cli.Execute()
}
