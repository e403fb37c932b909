package commands

import (
	"context"
	"fmt"
	"legiscraper/lib/restyutil"
	"legiscraper/lib/scrapers/legislature"
	"legiscraper/lib/telemetry"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	formatFlag *string
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "legis.json5", "The configuration file to read.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and request dumps.")
	formatFlag = rootCmd.PersistentFlags().String("format", string(formatTable), "The output format: table, json or yaml.")
}

var rootCmd = &cobra.Command{
	Use:   "legis-cli",
	Short: "legis-cli is a CLI for scraping legislative sessions and bills.",
	// usage is only useful for flag mistakes, not for scrape failures.
	// ExecuteContext prints the error itself.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		format, err := parseFormat(*formatFlag)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}

		if *verbose {
			out, err := restyutil.NewFilesystemOutput("<dev_state>/resty/legislature")
			if err != nil {
				return err
			}
			legislature.SetRestyInstrumentOutput(out)
		}

		cmd.SetContext(withEnv(cmd.Context(), newEnv(cfg, format)))
		return nil
	},
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
