package main

import "groupassign/cmd/cli"

func main() {
	cmd.Execute()
}
