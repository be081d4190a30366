package main

import "github.com/bloodmagesoftware/gardenplan/cmd"

func main() {
	cmd.Execute()
}
