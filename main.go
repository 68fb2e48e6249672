package main

import "github.com/jsphweid/danseband/cmd"

func main() {
	cmd.Execute()
}
