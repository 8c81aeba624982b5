package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stack-and-slash/server/internal/storage"
)

var (
	flagSessionDB    string
	flagSessionLimit int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded play sessions",
	Long: `Print the most recent play sessions from the session database, newest
first.

Examples:
  stackslash sessions --db sessions.db
  stackslash sessions --db sessions.db --limit 25`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().StringVar(&flagSessionDB, "db", "sessions.db", "Session database path")
	sessionsCmd.Flags().IntVar(&flagSessionLimit, "limit", 10, "Maximum sessions to list")
}

func runSessions(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagSessionDB)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagSessionLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEED\tTICKS\tREMOVED\tDURATION\tSTARTED")
	for _, s := range sessions {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%ds\t%s\n",
			s.ID, s.Seed, s.Ticks, s.FeaturesRemoved, s.DurationSeconds,
			s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
