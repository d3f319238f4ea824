package main

import "github.com/km-arc/go-locator/cmd"

func main() {
	cmd.Execute()
}
