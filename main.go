package main

import "contentsync/cmd"

func main() {
	cmd.Execute()
}
