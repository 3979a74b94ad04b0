package main

import "race-importer/cmd"

func main() {
	cmd.Execute()
}
