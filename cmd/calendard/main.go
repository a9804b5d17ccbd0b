package main

import "github.com/sjlee-dev/public-calendar/cmd"

func main() {
	cmd.Execute()
}
