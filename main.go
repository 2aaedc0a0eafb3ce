package main

import "mode7racer/cmd"

func main() {
	cmd.Execute()
}
