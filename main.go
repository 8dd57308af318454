package main

import "github.com/santaclaude2025/ccdigest/cmd"

func main() {
	cmd.Execute()
}
