package main

import (
	"flag"
	"log"
	"net/http"

	"docemarce/internal/devserver"
	"docemarce/internal/utils"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	logFile := flag.String("log", "", "log file path (default stderr)")
	flag.Parse()

	logger, err := utils.NewLogger(*logFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Close()

	store := devserver.NewStore()
	r := devserver.NewRouter(devserver.NewServer(store), logger)

	log.Println("Dev collaborator server running on", *addr)
	log.Fatal(http.ListenAndServe(*addr, r))
}
