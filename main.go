package main

import "comicpack/cmd"

func main() {
	cmd.Execute()
}
