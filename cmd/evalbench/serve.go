package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evalbench/evalbench"
	"github.com/evalbench/evalbench/storage/fs"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports from a local/remote storage service",
	Long: `Use the serve command to start a minimal http server that will
serve report files from the configured storage provider. The
intended use is to back a results dashboard that reads stored
reports from storages like fs, mysql, postgresql, sqlite3....

By default, the evalbench.json configuration file will be
loaded and used.`,
	Run: func(cmd *cobra.Command, args []string) {
		reader, err := storageReaderConfig()
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println("OK...")

		mux := http.NewServeMux()
		mux.HandleFunc("/", serveHandler(reader))

		if err := http.ListenAndServe(listenAddr, mux); err != nil {
			log.Fatal(err)
		}
	},
}

func serveHandler(reader evalbench.StorageReader) http.HandlerFunc {
	writeError := func(w http.ResponseWriter, err error) {
		response := struct {
			Error struct {
				Message string
			}
		}{}
		response.Error.Message = err.Error()
		json.NewEncoder(w).Encode(response)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		requestedFile := strings.TrimLeft(r.URL.Path, "/")
		index, err := reader.GetIndex()
		if err != nil {
			writeError(w, err)
			return
		}
		if requestedFile == "" || requestedFile == fs.IndexName {
			json.NewEncoder(w).Encode(index)
			return
		}
		if _, ok := index[requestedFile]; ok {
			report, err := reader.Fetch(requestedFile)
			if err != nil {
				writeError(w, err)
				return
			}
			json.NewEncoder(w).Encode(report)
			return
		}
		writeError(w, fmt.Errorf("file not found: %s", requestedFile))
	}
}

func storageReaderConfig() (evalbench.StorageReader, error) {
	h := loadHarness()
	if h.Storage == nil {
		return nil, fmt.Errorf("no storage configuration found")
	}
	reader, ok := h.Storage.(evalbench.StorageReader)
	if !ok {
		return nil, fmt.Errorf("configured storage type does not have reading capabilities")
	}
	return reader, nil
}

func init() {
	RootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "", ":3000", "The listen address for the HTTP server")
}
