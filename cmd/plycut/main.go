package main

import "github.com/piwi3910/plycut/cmd"

func main() {
	cmd.Execute()
}
