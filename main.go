package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"wbs-dashboard/database"
	"wbs-dashboard/handlers"
	"wbs-dashboard/storage"
	"wbs-dashboard/utilities"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	utilities.InitLogger()

	db, err := database.ConnectPostgres()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	bucket, err := storage.NewBucket(context.Background())
	if err != nil {
		log.Fatalf("Error initializing storage bucket: %v", err)
	}

	handlers.Init(db, bucket)

	LoadRoutes()
}
