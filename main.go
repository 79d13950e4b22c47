package main

import "studytube/cmd"

func main() {
	cmd.Execute()
}
