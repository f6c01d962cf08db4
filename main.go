package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	"decentra-social-network/config"
	"decentra-social-network/database"
	"decentra-social-network/pkg/db/sqlite"
	"decentra-social-network/store"
	"decentra-social-network/util"
	"decentra-social-network/util/api"
)

func main() {
	cfg := config.Load()

	db, err := sqlite.ConnectAndMigrate(cfg.DatabasePath, cfg.MigrationsPath)
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer db.Close()

	st := store.New()
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		log.Fatalf("Loading snapshot failed: %v", err)
	}
	st.Restore(snap)
	log.Printf("Restored state: %d users, %d posts", len(snap.Profiles), len(snap.Posts))

	sessions := util.NewSessions()
	server := api.NewServer(st, sessions)
	mux := server.Routes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(mux)

	checkpointer := &database.Checkpointer{
		DB:       db,
		Store:    st,
		Interval: cfg.CheckpointInterval,
	}
	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- checkpointer.Run(stop, log.Printf)
	}()

	httpServer := &http.Server{Addr: ":" + cfg.Port, Handler: handler}
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down, writing final checkpoint")
	close(stop)
	if err := <-done; err != nil {
		log.Printf("Final checkpoint failed: %v", err)
	}
	httpServer.Close()
}
