package main

import "github.com/issuetrack-api/cmd"

func main() {
	cmd.Execute()
}
