package main

import "log"

func main() {
	log.Print("Initializing authz demo server")
	if err := Run(); err != nil {
		log.Fatal(err)
	}
}
