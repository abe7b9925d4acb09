package main

import "github.com/fsm00037/terauja-backend/cmd"

func main() {
	cmd.Execute()
}
