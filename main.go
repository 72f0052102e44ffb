package main

import "github.com/runZeroInc/runzero-tools/cmd"

func main() {
	cmd.Execute()
}
