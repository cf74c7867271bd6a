package main

import "github.com/szuwgh/hanword/cmd"

func main() {
	cmd.Execute()
}
