package main

import "gitsift/cmd"

func main() {
	cmd.Execute()
}
