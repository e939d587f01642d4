package main

import "github.com/notargets/gogrid/cmd"

func main() {
	cmd.Execute()
}
