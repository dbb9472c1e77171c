package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/norregaard/logos-maximus/internal/assetcache"
	"github.com/norregaard/logos-maximus/internal/prefs"
	"github.com/norregaard/logos-maximus/internal/store"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show saved preferences and storage statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		db, err := e.storage()
		if err != nil {
			return err
		}
		return printState(cmd.OutOrStdout(), db, e.dbPath)
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear <key>...",
	Short: "Delete saved preference keys",
	Long: `Delete the named keys from local storage. The app falls back to its
defaults for them on the next start. Run "logos state" to list the keys.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		db, err := e.storage()
		if err != nil {
			return err
		}
		return clearKeys(cmd.OutOrStdout(), db, args)
	},
}

func init() {
	stateCmd.AddCommand(stateClearCmd)
}

func clearKeys(w io.Writer, db *store.Store, keys []string) error {
	stored, err := db.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if !slices.Contains(stored, k) {
			fmt.Fprintf(w, "%s: not set\n", k)
			continue
		}
		if err := db.Delete(k); err != nil {
			return err
		}
		fmt.Fprintf(w, "Cleared %s.\n", k)
	}
	return nil
}

func printState(w io.Writer, db *store.Store, dbPath string) error {
	p := prefs.New(db)

	theme, err := p.Theme(nil)
	if err != nil {
		return fmt.Errorf("reading theme: %w", err)
	}
	filter, err := p.Filter()
	if err != nil {
		return fmt.Errorf("reading filter: %w", err)
	}
	daily, err := p.Daily()
	if err != nil {
		return fmt.Errorf("reading daily mode: %w", err)
	}
	favs, favErr := p.Favorites()

	_, assets, size, err := db.Stats(dbPath)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}
	keys, err := db.Keys()
	if err != nil {
		return err
	}

	category := filter.Category
	if category == "" {
		category = "All"
	}

	fmt.Fprintf(w, "Data: %s\n", dbPath)
	fmt.Fprintf(w, "Size: %s\n", formatBytes(size))
	fmt.Fprintf(w, "Keys: %d\n", len(keys))
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\n", k)
	}
	fmt.Fprintf(w, "Theme: %s\n", theme)
	fmt.Fprintf(w, "Filter: category=%s short=%t q=%q\n", category, filter.Short, filter.Query)
	fmt.Fprintf(w, "Daily: %t\n", daily)
	if favErr != nil {
		fmt.Fprintf(w, "Favorites: 0 (%v)\n", favErr)
	} else {
		fmt.Fprintf(w, "Favorites: %d\n", len(favs))
	}
	fmt.Fprintf(w, "Cached assets: %d (current store %s)\n", assets, assetcache.CacheName)
	return nil
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
