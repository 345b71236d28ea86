package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wealthtrail/household-projector/internal/calculation"
	"github.com/wealthtrail/household-projector/internal/config"
	"github.com/wealthtrail/household-projector/internal/domain"
	"github.com/wealthtrail/household-projector/internal/output"
)

var (
	configFile string
	formatName string
	outputFile string
	verbose    bool
)

var log = logrus.New()

// logrusAdapter bridges the engine's logger interface onto logrus.
type logrusAdapter struct {
	log *logrus.Logger
}

func (a logrusAdapter) Debugf(format string, args ...any) { a.log.Debugf(format, args...) }
func (a logrusAdapter) Infof(format string, args ...any)  { a.log.Infof(format, args...) }
func (a logrusAdapter) Warnf(format string, args ...any)  { a.log.Warnf(format, args...) }
func (a logrusAdapter) Errorf(format string, args ...any) { a.log.Errorf(format, args...) }

var rootCmd = &cobra.Command{
	Use:   "projector",
	Short: "Household retirement projection and tax engine",
	Long: `projector runs a deterministic year-by-year projection of a household's
finances (income, taxes, contributions, withdrawals, balances, net worth)
from a YAML description of its people, accounts, expenses and mortgage.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run the full year-by-year household projection",
	RunE: func(cmd *cobra.Command, args []string) error {
		hh, err := loadHousehold()
		if err != nil {
			return err
		}

		engine := calculation.NewEngineWithLogger(logrusAdapter{log})
		result, err := engine.ProjectRetirement(hh)
		if err != nil {
			return fmt.Errorf("projection failed: %w", err)
		}

		formatter, err := output.GetFormatterByName(formatName)
		if err != nil {
			return err
		}
		data, err := formatter.Format(result)
		if err != nil {
			return fmt.Errorf("formatting failed: %w", err)
		}

		return writeOut(data)
	},
}

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Print the month-by-month mortgage amortization schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		hh, err := loadHousehold()
		if err != nil {
			return err
		}

		engine := calculation.NewEngineWithLogger(logrusAdapter{log})
		rows := engine.GenerateAmortizationSchedule(hh)
		if len(rows) == 0 {
			return fmt.Errorf("no mortgage configured in %s", configFile)
		}

		switch output.NormalizeFormatName(formatName) {
		case "csv":
			data, err := output.AmortizationCSV(rows)
			if err != nil {
				return err
			}
			return writeOut(data)
		default:
			return writeOut(output.AmortizationTable(rows))
		}
	},
}

func loadHousehold() (*domain.ResolvedHousehold, error) {
	parser := config.NewParser()
	raw, err := parser.LoadFromFile(configFile)
	if err != nil {
		return nil, err
	}
	return parser.Resolve(raw, time.Now())
}

func writeOut(data []byte) error {
	if outputFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return err
	}
	log.Infof("wrote %s", outputFile)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "household.yaml", "household configuration file")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "console", "output format (console, csv, json)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(amortizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
