package main

import "github.com/trafficlens/trafficlens/cmd"

func main() {
	cmd.Execute()
}
