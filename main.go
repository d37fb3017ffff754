package main

import "github.com/SenszZ00/cybersafelara1-sub000/cmd"

func main() {
	cmd.Execute()
}
