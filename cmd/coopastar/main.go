// Command coopastar plans, checks and benchmarks multi-agent grid paths.
package main

import "github.com/elektrokombinacija/coop-astar/internal/cli"

func main() {
	cli.Execute()
}
