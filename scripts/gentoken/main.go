// Command gentoken mints an admin JWT for the protected article endpoints.
//
//	ADMIN_JWT_SECRET=... go run ./scripts/gentoken -sub admin -ttl 720h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go-portfolio-backend/pkg/auth"
)

func main() {
	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.GenerateToken(secret, *subject, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Printf("Subject: %s\nExpires: %s\nToken: %s\n",
		*subject, time.Now().Add(*ttl).Format(time.RFC3339), token)
}
