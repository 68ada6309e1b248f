package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/wordle-helper/internal/config"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/history"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/httpserver"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/predicate"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-helper/internal/words"
)

// app carries what every subcommand needs once the root pre-run is done.
type app struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "wordle-helper",
		Short:         "Find Wordle words consistent with what you know so far",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			setupLogging(cfg.LogLevel)
			if err := words.Init(cfg.WordsFile); err != nil {
				log.Error().Err(err).Msg("failed to load word list")
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")

	root.AddCommand(a.randomCmd(), a.eligibleCmd(), a.serveCmd(), a.tokenCmd())
	return root
}

// setupLogging applies the level and switches to the console writer on a terminal.
func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// -----------------------------------------------------------------------------
// random

func (a *app) randomCmd() *cobra.Command {
	var (
		count     int
		showDaily bool
	)
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a random word or words the game can be started with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			if showDaily {
				date, word := daily.Word(time.Now(), a.cfg.DailySalt, words.All())
				p.line(fmt.Sprintf("Word of the Day (%s)", date), word)
				return nil
			}
			if !cmd.Flags().Changed("count") {
				word, err := words.Random(words.All(), nil)
				if err != nil {
					return err
				}
				p.line("Randomly Selected Word", word)
				return nil
			}
			picked, err := words.Sample(words.All(), count, nil)
			if err != nil {
				log.Error().Err(err).Int("count", count).Msg("sample words")
				return err
			}
			p.line("Randomly Selected Words", strings.Join(picked, ", "))
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "c", 1, "The number of random words that should be displayed")
	cmd.Flags().BoolVar(&showDaily, "daily", false, "Show the deterministic word of the day instead")
	return cmd
}

// -----------------------------------------------------------------------------
// eligible

func (a *app) eligibleCmd() *cobra.Command {
	var (
		correct, wrong, invalid string
		asJSON                  bool
	)
	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "Calculate all eligible guesses based on given known information",
		Long: `Calculate all eligible guesses based on given known information.

  --correct-positions  letters in the right place, '_' for unknown ones;
                       video with i and d undiscovered is "v__eo"
  --wrong-positions    letters in the word but not where they were guessed;
                       repeat a letter to require it more than once
  --invalid-letters    letters that are not in the word at all

A flag that is not given places no constraint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ev predicate.Evidence
			if cmd.Flags().Changed("correct-positions") {
				ev.Correct = &correct
			}
			if cmd.Flags().Changed("wrong-positions") {
				ev.Wrong = &wrong
			}
			if cmd.Flags().Changed("invalid-letters") {
				ev.Invalid = &invalid
			}

			matched, err := predicate.New(ev).FilterContext(cmd.Context(), words.All(), a.cfg.FilterWorkers)
			if err != nil {
				return err
			}
			log.Debug().Int("matched", len(matched)).Int("words", len(words.All())).Msg("eligible")

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(map[string]any{"evidence": ev, "count": len(matched), "words": matched})
			}
			newPrinter(cmd.OutOrStdout()).line("Eligible Wordle Contenders", quotedList(matched))
			return nil
		},
	}
	cmd.Flags().StringVarP(&correct, "correct-positions", "c", "", "Letters in the correct position, '_' elsewhere (e.g. v__eo)")
	cmd.Flags().StringVarP(&wrong, "wrong-positions", "w", "", "Letters in the word but not in the correct position")
	cmd.Flags().StringVarP(&invalid, "invalid-letters", "i", "", "Letters known not to be in the word")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}

// -----------------------------------------------------------------------------
// serve

func (a *app) serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word, game and history endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Port
			}
			if a.cfg.JWTSecret == config.DevSecret {
				log.Warn().Msg("JWT_SECRET not set, using development secret")
			}

			var hist *history.Store
			if a.cfg.HistoryDB != "" {
				db, err := history.Open(a.cfg.HistoryDB)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer db.Close()
				if err := history.Migrate(db); err != nil {
					return fmt.Errorf("migrate history: %w", err)
				}
				hist = history.NewStore(db)
			}

			srv := httpserver.New(a.cfg, store.NewMemoryStore(), hist)
			total, _ := words.Stats()
			log.Info().Str("port", port).Int("words", total).Bool("history", hist != nil).Msg("starting wordle-helper")
			if err := srv.Start(":" + port); err != nil {
				log.Error().Err(err).Msg("server exited")
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from config)")
	return cmd
}

// -----------------------------------------------------------------------------
// token

func (a *app) tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the /history endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, exp, err := httpserver.SignToken(a.cfg.JWTSecret, subject, ttl)
			if err != nil {
				return err
			}
			log.Debug().Str("subject", subject).Time("expires", exp).Msg("token signed")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Name recorded with this token's queries")
	cmd.Flags().DurationVar(&ttl, "ttl", 14*24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
