package main

import "github.com/skybatch/weather-etl/cmd"

func main() {
	cmd.Execute()
}
