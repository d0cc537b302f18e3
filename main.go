package main

import "github.com/jsphweid/jianpu/cmd"

func main() {
	cmd.Execute()
}
