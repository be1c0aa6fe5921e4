package main

import "appshelf/cmd/appshelf-cli/cmd"

func main() {
	cmd.Execute()
}
