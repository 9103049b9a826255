package main

import "github.com/brogergvhs/komikd/cmd"

func main() {
	cmd.Execute()
}
