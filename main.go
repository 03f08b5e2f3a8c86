package main

import (
	"log"
	"net/http"
	"os"

	"github.com/avtozap/carservice/app/audit"
	"github.com/avtozap/carservice/app/cmd"
	"github.com/avtozap/carservice/app/configs"
	"github.com/avtozap/carservice/app/routes"
)

func main() {
	configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("Database connected.")

	sessionKeys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatal("Session keys missing:", err)
	}

	auditLog := audit.NewLogger(256)
	defer auditLog.Close()

	router := routes.NewRouter(db, sessionKeys, auditLog)

	server := http.Server{
		Addr:    configs.LoadENV.Port,
		Handler: router,
	}

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("server stopped:", err)
	}
}
