// Package main applies the database schema.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"nordlager/internal/infrastructure/storage/postgres"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Println("required environment variable DATABASE_URL not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		fmt.Printf("failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		fmt.Printf("failed to apply schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("schema applied")
}
