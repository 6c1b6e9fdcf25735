package main

import "github.com/filedemand/filedemand/cmd/fdemand/cmd"

func main() {
	cmd.Execute()
}
