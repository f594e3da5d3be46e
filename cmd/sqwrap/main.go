package main

import (
	"context"
	"log"

	"github.com/sqwrap/sqwrap/internal/cli"
)

func main() {
	if err := cli.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
