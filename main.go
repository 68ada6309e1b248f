// wordle-helper narrows a Wordle word list from the evidence gathered so far
// and hands out random words to start a game with.
//
// Usage:
//
//	wordle-helper random [-c N] [--daily]
//	wordle-helper eligible [-c correct] [-w wrong] [-i invalid]
//	wordle-helper serve [--port P]
//	wordle-helper token --subject NAME
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("wordle-helper failed")
		os.Exit(1)
	}
}
