package main

import "asset-diff/cmd"

func main() {
	cmd.Execute()
}
