package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"pufsim/internal/app"
	"pufsim/internal/server"
)

func main() {
	addr := flag.String("addr", ":8420", "listen address")
	flag.Parse()

	logger := log.New(os.Stderr, "[pufsimd] ", log.LstdFlags)
	wire := app.NewWire(app.Config{})
	srv := server.New(wire, logger)

	logger.Printf("pufsimd listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, srv))
}
