package main

import "github.com/KaramelBytes/survey-snapshot/cmd"

func main() {
	cmd.Execute()
}
