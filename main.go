package main

import "github.com/drupdate/drupdate/cmd"

func main() {
	cmd.Execute()
}
