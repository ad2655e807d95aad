package main

import "github.com/Tiliavir/tim/cmd"

func main() {
	cmd.Execute()
}
