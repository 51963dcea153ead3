package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/browse"
	"github.com/amishk599/jobboard/internal/model"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the browser theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{browse.ThemeLight, browse.ThemeDark},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)
	cfg := loadConfig(logger)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		if err := st.SetSetting(model.SettingTheme, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Theme set to %s\n", args[0])
		return nil
	}

	theme, err := st.Setting(model.SettingTheme)
	if err != nil {
		return err
	}
	if theme == "" {
		theme = cfg.UI.Theme
	}
	fmt.Fprintln(out, browse.NormalizeTheme(theme))
	return nil
}
