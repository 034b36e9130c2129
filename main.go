package main

import "table-steward/cmd"

func main() {
	cmd.Execute()
}
