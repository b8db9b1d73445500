package main

import "github.com/mouse-blink/hazard/cmd"

func main() {
	cmd.Execute()
}
