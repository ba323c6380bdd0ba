// Package main provides the CLI entrypoint for typerally.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/typerally/typerally/internal/audio"
	"github.com/typerally/typerally/internal/config"
	"github.com/typerally/typerally/internal/model"
	"github.com/typerally/typerally/internal/particles"
	"github.com/typerally/typerally/internal/race"
	"github.com/typerally/typerally/internal/stats"
	"github.com/typerally/typerally/internal/statsui"
	"github.com/typerally/typerally/internal/store"
	"github.com/typerally/typerally/internal/tui"
	"github.com/typerally/typerally/internal/words"
)

const (
	defaultDifficulty  = "normal"
	defaultTickMs      = 100
	defaultCurveWindow = 10
	defaultScoreLimit  = 10
)

var (
	playDifficulty string
	playSound      bool
	playTickMs     int
	playPlayer     string
	playWordList   string

	statsDifficulty  string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	scoresDifficulty string
	scoresLimit      int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typerally",
		Short:         "TUI typing race",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", defaultDifficulty, "difficulty (easy, normal, hard)")
	rootCmd.Flags().BoolVar(&playSound, "sound", true, "enable terminal bell sounds")
	rootCmd.Flags().IntVar(&playTickMs, "tick-ms", defaultTickMs, "UI tick interval in milliseconds")
	rootCmd.Flags().StringVar(&playPlayer, "player", "", "player name for the leaderboard")
	rootCmd.Flags().StringVar(&playWordList, "wordlist", "", "path to a custom word list file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "difficulty", &playDifficulty, fileCfg.Game.Difficulty)
	applyBoolConfig(cmd, "sound", &playSound, fileCfg.Game.Sound)
	applyIntConfig(cmd, "tick-ms", &playTickMs, fileCfg.Game.TickMs)
	applyStringConfig(cmd, "player", &playPlayer, fileCfg.Game.Player)
	applyStringConfig(cmd, "wordlist", &playWordList, fileCfg.Game.WordList)

	cfg := model.Config{
		Difficulty: playDifficulty,
		Sound:      playSound,
		TickMs:     playTickMs,
		Player:     playPlayer,
		WordList:   playWordList,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	var sounds audio.Notifier = audio.Nop{}
	if cfg.Sound {
		sounds = audio.NewBell(os.Stdout)
	}
	fx := particles.NewSystem()
	session := race.NewSession(sounds, fx)
	if cfg.WordList != "" {
		vocab, err := words.LoadFile(cfg.WordList)
		if err != nil {
			return fmt.Errorf("failed to load word list %s: %w", cfg.WordList, err)
		}
		if err := session.SetVocabulary(vocab); err != nil {
			return fmt.Errorf("failed to set vocabulary: %w", err)
		}
	}

	gameModel := tui.NewModel(session, fx, sounds, st, cfg)
	program := tea.NewProgram(gameModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	cmd.Flags().StringVar(&scoresDifficulty, "difficulty", "", "difficulty filter")
	cmd.Flags().IntVar(&scoresLimit, "limit", defaultScoreLimit, "number of scores to show")
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	if scoresDifficulty != "" {
		if _, err := race.ParseDifficulty(scoresDifficulty); err != nil {
			return fmt.Errorf("invalid --difficulty value: %w", err)
		}
	}
	if scoresLimit <= 0 {
		return fmt.Errorf("--limit must be > 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	top, err := st.TopScores(context.Background(), model.ScoreFilter{
		Difficulty: scoresDifficulty,
		Limit:      scoresLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}
	return stats.RenderLeaderboard(cmd.OutOrStdout(), top)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show race stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsDifficulty, "difficulty", "", "difficulty filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N races")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print stats to stdout instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsDifficulty != "" {
		if _, err := race.ParseDifficulty(statsDifficulty); err != nil {
			return fmt.Errorf("invalid --difficulty value: %w", err)
		}
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Difficulty:  statsDifficulty,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return printPlainStats(cmd.OutOrStdout(), st, cfg)
	}

	statsModel := statsui.NewModel(st, cfg)
	program := tea.NewProgram(statsModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printPlainStats(w io.Writer, st *store.Store, cfg model.StatsConfig) error {
	races, err := st.ListRaces(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load races: %w", err)
	}
	if err := stats.RenderSummary(w, races); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := stats.RenderCurves(w, races, cfg.CurveWindow, 0, 0, false); err != nil {
		return fmt.Errorf("failed to render curves: %w", err)
	}
	return stats.RenderHistory(w, races)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateConfig(cfg model.Config) error {
	if _, err := race.ParseDifficulty(cfg.Difficulty); err != nil {
		return fmt.Errorf("invalid --difficulty value: %w", err)
	}
	if cfg.TickMs <= 0 {
		return fmt.Errorf("--tick-ms must be > 0")
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typerally configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# difficulty = %q    # Difficulty (easy, normal, hard)
# sound = true            # Terminal bell sounds
# tick-ms = %d           # UI tick interval in milliseconds
# player = ""             # Player name for the leaderboard
# wordlist = ""           # Path to a custom word list file
`,
		defaultDifficulty,
		defaultTickMs,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
