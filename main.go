package main

import "github.com/josephlewis42/seqsh/cmd"

func main() {
	cmd.Execute()
}
