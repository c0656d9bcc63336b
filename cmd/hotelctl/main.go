package main

import "hotelbooking/cmd/hotelctl/commands"

func main() {
	commands.Execute()
}
