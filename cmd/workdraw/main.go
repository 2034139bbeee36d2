package main

import "github.com/philipparndt/workdraw/cmd"

func main() {
	cmd.Execute()
}
