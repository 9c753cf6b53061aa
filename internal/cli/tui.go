package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agrilearn/agrilearn/internal/logging"
	"github.com/agrilearn/agrilearn/internal/search"
	"github.com/agrilearn/agrilearn/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		tui.ShowBanner(cmd.Root().Version)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	app := tui.NewApp(e.cfg, e.store, e.client, e.sess, newSearcher(e))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return nil
}

// newSearcher prefers the persistent bleve index and falls back to the
// in-process scorer when the index cannot be opened.
func newSearcher(e *env) search.Searcher {
	if e.cfg.Cache.SearchIndex != "" {
		if engine, err := search.NewBleveEngine(e.store, e.cfg.Cache.SearchIndex); err == nil {
			return engine
		} else {
			logging.Logger.Warn("falling back to in-memory search", zap.Error(err))
		}
	}
	return search.NewEngine(e.store)
}
