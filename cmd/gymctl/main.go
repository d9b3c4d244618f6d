// Command gymctl is the command line client for the gymstream backend.
package main

import "gymstream/internal/cli"

func main() {
	cli.Execute()
}
