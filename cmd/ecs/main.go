package main

import "github.com/ecsprotocol/ecs/cmd/ecs/cmd"

func main() {
	cmd.Execute()
}
