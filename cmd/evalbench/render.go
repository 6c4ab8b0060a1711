package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [report]",
	Short: "Render a stored report",
	Long: `The render subcommand fetches a report from the configured
storage provider and renders it. With no argument the most
recent report is rendered; pass a report filename (as listed
in the storage index) to render an older one.

The output format is controlled with --format: the default
compact text, a table, or json.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 1 {
			fmt.Println(cmd.Long)
			os.Exit(1)
		}

		reader, err := storageReaderConfig()
		if err != nil {
			log.Fatal(err)
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			index, err := reader.GetIndex()
			if err != nil {
				log.Fatal(err)
			}
			var latest int64
			for file, nsec := range index {
				if nsec > latest {
					latest = nsec
					name = file
				}
			}
			if name == "" {
				log.Fatal("no stored reports")
			}
		}

		report, err := reader.Fetch(name)
		if err != nil {
			log.Fatal(err)
		}

		if err := report.Render(os.Stdout, format); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)
}
