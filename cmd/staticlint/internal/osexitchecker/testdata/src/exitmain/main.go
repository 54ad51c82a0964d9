package main

import "os"

func run() int {
	os.Exit(2)
	return 0
}

func main() {
	defer func() {
		os.Exit(run()) // want "calling os.Exit in main package main func"
	}()
	os.Exit(1) // want "calling os.Exit in main package main func"
}
