package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/szuwgh/hanword/util"
)

var jsonOutput bool

func init() {
	segmentCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON")
	rootCmd.AddCommand(segmentCmd)
}

var segmentCmd = &cobra.Command{
	Use:   "segment [text]",
	Short: "segment text into filtered words",
	Long:  `segment prints the words kept after cleaning and stopword filtering. Text is read from stdin when no argument is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := inputText(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		s := newServer(loadConfig())
		defer s.Close()
		words, err := s.Segment(text)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), words)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(words, " "))
		return nil
	},
}

// inputText joins args, or reads all of r when there are none.
func inputText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return util.Byte2Str(b), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
