package main

import "github.com/paanihub/paanictl/cmd"

func main() {
	cmd.Execute()
}
