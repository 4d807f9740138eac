package main

import "github.com/kasuboski/renamez/cmd"

func main() {
	cmd.Execute()
}
