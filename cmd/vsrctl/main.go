package main

import "github.com/metfin/vsr-sdk-go/internal/cli"

func main() {
	cli.Execute()
}
