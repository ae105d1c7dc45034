package main

import "bizman/internal/app/server"

func main() {
	server.Run()
}
