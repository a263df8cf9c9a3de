// Command hash-generator prints bcrypt hashes for the passwords given on
// the command line. Useful for seeding accounts directly in MongoDB during
// development.
package main

import (
	"fmt"
	"os"

	"github.com/listkeep/listkeep-api/internal/service/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s password [password ...]\n", os.Args[0])
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher()
	for _, password := range os.Args[1:] {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash %q: %v\n", password, err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
