package main

import "github.com/k1LoW/paraicon/cmd"

func main() {
	cmd.Execute()
}
