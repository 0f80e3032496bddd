package main

import "github.com/bharath8080/thinkingui/cmd"

func main() {
	cmd.Execute()
}
