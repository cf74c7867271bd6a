package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/szuwgh/hanword/pkg/config"
	"github.com/szuwgh/hanword/pkg/server"
	_ "github.com/szuwgh/hanword/pkg/tokenizer/buildinit"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hanword",
	Short: "chinese segmentation and keyword extraction",
	Long: `hanword segments Chinese text and ranks its keywords by TF-IDF.
Run "hanword start" for the HTTP API or use the segment and keywords
commands directly.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default $HOME/.hanword.yaml or ./hanword.yaml)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalln("load config:", err)
	}
	return cfg
}

// newServer builds the pipeline without metrics for one-shot commands.
func newServer(cfg *config.Config) *server.Server {
	s, err := server.New(cfg, nil)
	if err != nil {
		log.Fatalln("create server:", err)
	}
	return s
}
