package main

import "github.com/nikogura/storydocs/cmd"

func main() {
	cmd.Execute()
}
