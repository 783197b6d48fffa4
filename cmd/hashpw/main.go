// Package main generates the bcrypt hash for OPERATOR_PASSWORD_HASH.
//
// Usage: hashpw <password>
package main

import (
	"fmt"
	"os"

	"milkledger/internal/domain/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
