package main

import "englishhub/backend/cmd"

func main() {
	cmd.Execute()
}
