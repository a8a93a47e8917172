package main

import "github.com/ferrari-contract/preventivo/cmd"

func main() {
	cmd.Execute()
}
