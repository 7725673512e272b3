package main

import "github.com/lodestone-mc/lodestone/cmd"

func main() {
	cmd.Execute()
}
