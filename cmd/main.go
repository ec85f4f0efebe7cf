package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/bayanihan-ph/relief-backend/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using process environment")
	}

	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		a.Log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
