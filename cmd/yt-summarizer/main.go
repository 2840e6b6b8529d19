package main

import cmd "github.com/rohmanhakim/yt-summarizer/internal/cli"

func main() {
	cmd.Execute()
}
