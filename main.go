package main

import "github.com/relgen/relgen/cmd"

func main() {
	cmd.Execute()
}
