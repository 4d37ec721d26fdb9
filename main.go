package main

import "aiko-vesting/cmd"

func main() {
	cmd.Execute()
}
