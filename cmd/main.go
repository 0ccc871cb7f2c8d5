package main

import (
	cmd "github.com/kerbaras/logolink/cmd/logolink"
)

func main() {
	cmd.Execute()
}
