// Command leaderboard computes benchmark leaderboards from the command line.
package main

import "github.com/okian/benchboard/internal/cli"

func main() {
	cli.Execute()
}
