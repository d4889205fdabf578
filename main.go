package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/graple254/bazaa/app/cmd"
	"github.com/graple254/bazaa/app/configs"
	"github.com/graple254/bazaa/app/routes"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	rand.Seed(time.Now().UnixNano())

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	router := routes.NewRouter(db, env)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
