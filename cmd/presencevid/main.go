package main

import "github.com/presenceos/video-engine/internal/cli"

func main() {
	cli.Main()
}
