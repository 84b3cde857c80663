package main

import "github.com/chrisdamba/foodash/cmd"

func main() {
	cmd.Execute()
}
