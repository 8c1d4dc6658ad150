package main

import "github.com/Spritualkb/xingrin/cmd"

func main() {
	cmd.Execute()
}
