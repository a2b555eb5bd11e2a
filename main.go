package main

import "github.com/nikogura/career-roadmap/cmd"

func main() {
	cmd.Execute()
}
