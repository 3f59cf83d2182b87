package main

import "github.com/user/recdesk/internal/cli"

func main() {
	cli.Execute()
}
