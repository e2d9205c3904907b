package main

import "github.com/Brendon-Hablutzel/api-client/internal/cli"

func main() {
	cli.Execute()
}
