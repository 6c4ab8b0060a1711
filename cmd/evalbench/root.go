package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/evalbench/evalbench"
	"github.com/evalbench/evalbench/types"
)

var configFile string
var storeReport bool
var printLogs bool
var format string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "evalbench",
	Short: "Benchmark an external configuration-language evaluator",
	Long: `Evalbench runs declaratively configured benchmarks against
an external configuration-language evaluator and reports
timing statistics.

Evalbench will always look for an evalbench.json file in
the current working directory by default and use it.
You can specify a different file location using the
--config/-c flag.

Running evalbench without any arguments will invoke
a single run and print the report to stdout. To
store the report, use --store.`,

	Run: func(cmd *cobra.Command, args []string) {
		if printLogs {
			log.SetOutput(os.Stdout)
		}

		h := loadHarness()

		if storeReport {
			if h.Storage == nil {
				log.Fatal("no storage configured")
			}
			if err := h.RunAndStore(); err != nil {
				log.Fatal(err)
			}
			return
		}

		total := len(h.Benchmarks())
		if total == 0 {
			log.Fatal("no benchmarks configured")
		}

		bar := progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Running benchmarks"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		h.OnResult = func(types.Result) {
			bar.Add(1)
		}

		report, err := h.Run()
		bar.Finish()
		if err != nil {
			log.Fatal(err)
		}

		if err := report.Render(os.Stdout, format); err != nil {
			log.Fatal(err)
		}

		if report.Status() != types.StatusOK {
			os.Exit(1)
		}
	},
}

func loadHarness() evalbench.Harness {
	configBytes, err := ioutil.ReadFile(configFile)
	if err != nil {
		log.Fatal(err)
	}

	var h evalbench.Harness
	err = json.Unmarshal(configBytes, &h)
	if err != nil {
		log.Fatal(err)
	}

	return h
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "evalbench.json", "JSON config file")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", types.FormatText, "Report format (text, table, json)")
	RootCmd.Flags().BoolVar(&storeReport, "store", false, "Store the report")
	RootCmd.Flags().BoolVar(&printLogs, "v", false, "Enable logging to standard output")
}
