package main

import "github.com/josephlewis42/sdshell/cmd"

func main() {
	cmd.Execute()
}
