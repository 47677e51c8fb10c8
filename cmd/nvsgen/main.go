package main

import "github.com/sensorflash/nvsgen/cmd/nvsgen/cmd"

func main() {
	cmd.Execute()
}
