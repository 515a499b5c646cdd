package main

import "github.com/menupix/menupix/cmd"

func main() {
	cmd.Execute()
}
