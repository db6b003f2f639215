package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/verdicthq/verdict/internal/api"
	"github.com/verdicthq/verdict/internal/credits"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Command completed
	ExitNeedTopUp = 1 // Submission blocked by insufficient credits
	ExitError     = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, api.UserMessage(err))

		if errors.Is(err, credits.ErrNeedTopUp) || api.IsInsufficientCredits(err) {
			os.Exit(ExitNeedTopUp)
		}
		os.Exit(ExitError)
	}
}
