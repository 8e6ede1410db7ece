package cmd

import (
	"fmt"
	"os"
)

// runVersion prints version and key environment status. It deliberately
// avoids loading the full configuration so it works even when the config
// file is broken.
func runVersion() error {
	fmt.Printf("InfoSetu %s\n", AppVersion)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Println()

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		fmt.Println("GEMINI_API_KEY: configured")
	} else {
		fmt.Println("GEMINI_API_KEY: not set (local ollama runtime will be used)")
	}
	if os.Getenv("SEARCH_API_KEY") != "" {
		fmt.Println("SEARCH_API_KEY: configured")
	} else {
		fmt.Println("SEARCH_API_KEY: not set (web search fallback disabled)")
	}
	return nil
}
