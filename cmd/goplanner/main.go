package main

import "github.com/dbsmedya/goplanner/cmd/goplanner/cmd"

func main() {
	cmd.Execute()
}
