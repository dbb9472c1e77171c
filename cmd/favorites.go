package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/quote"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Inspect saved favorites",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print favorites, most recent first",
	Args:  cobra.NoArgs,
	RunE: withPrefs(func(cmd *cobra.Command, args []string, p *prefs.Prefs) error {
		list, err := p.Favorites()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
			return nil
		}
		printQuotes(cmd.OutOrStdout(), list)
		return nil
	}),
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a favorite by id",
	Args:  cobra.ExactArgs(1),
	RunE: withPrefs(func(cmd *cobra.Command, args []string, p *prefs.Prefs) error {
		removed, err := removeFavorite(p, args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no favorite with id %q", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
		return nil
	}),
}

var favoritesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write favorites as JSON to stdout",
	Args:  cobra.NoArgs,
	RunE: withPrefs(func(cmd *cobra.Command, args []string, p *prefs.Prefs) error {
		list, err := p.Favorites()
		if err != nil {
			return err
		}
		return exportFavorites(cmd.OutOrStdout(), list)
	}),
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd, favoritesRemoveCmd, favoritesExportCmd)
}

// withPrefs runs fn against the persisted preferences. Unlike the TUI it
// refuses to fall back to memory, since nothing would be read or saved.
func withPrefs(fn func(cmd *cobra.Command, args []string, p *prefs.Prefs) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		db, err := e.storage()
		if err != nil {
			return err
		}
		return fn(cmd, args, prefs.New(db))
	}
}

func removeFavorite(p *prefs.Prefs, id string) (bool, error) {
	list, err := p.Favorites()
	if err != nil {
		return false, err
	}
	list, removed := prefs.RemoveFavorite(list, id)
	if !removed {
		return false, nil
	}
	if err := p.SetFavorites(list); err != nil {
		return false, fmt.Errorf("saving favorites: %w", err)
	}
	return true, nil
}

func exportFavorites(w io.Writer, list []quote.Quote) error {
	if list == nil {
		list = []quote.Quote{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
