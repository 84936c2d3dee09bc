// keygen prints a fresh random secret for SHARE_SIGNING_KEY.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
)

func main() {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("generate key: %v", err)
	}

	fmt.Println("New signing key:", hex.EncodeToString(buf))
}
