package main

import (
	"log"

	"github.com/sqwrap/sqwrap/internal/bench"
)

func main() {
	if err := bench.Run(); err != nil {
		log.Fatal(err)
	}
}
