package main

import "github.com/emrgen/linkdealer/cmd"

func main() {
	cmd.Execute()
}
