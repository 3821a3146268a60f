// Command create-admin creates or resets the admin account used to sign in to
// the dashboard. Username and password come from flags, falling back to the
// ADMIN_USERNAME / ADMIN_PASSWORD environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/terravista/estate-core/internal/config"
	"github.com/terravista/estate-core/internal/database"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	username := flag.String("username", os.Getenv("ADMIN_USERNAME"), "Admin username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "Admin password")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongo, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer mongo.Close(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	u, err := database.NewUserRepo(mongo).EnsureAdmin(ctx, *username, string(hash))
	if err != nil {
		log.Fatalf("save admin: %v", err)
	}
	fmt.Printf("admin %q ready (id %s)\n", u.Username, u.ID.Hex())
}
