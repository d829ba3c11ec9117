package main

import "github.com/krau/mediadex/cmd"

func main() {
	cmd.Execute()
}
