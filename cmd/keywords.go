package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/szuwgh/hanword/pkg/rank"
)

var (
	topN   int
	corpus bool
)

func init() {
	keywordsCmd.Flags().IntVarP(&topN, "top-n", "n", -1, "keywords per text (default keyword.default_top_n)")
	keywordsCmd.Flags().BoolVar(&corpus, "corpus", false, "treat each stdin line as a document and weight over all of them")
	keywordsCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON")
	rootCmd.AddCommand(keywordsCmd)
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords [text]",
	Short: "extract keywords",
	Long: `keywords ranks the words of a text by TF-IDF. With --corpus every
non-empty stdin line is a document and inverse document frequency is
computed across the lines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newServer(loadConfig())
		defer s.Close()
		n := s.DefaultTopN()
		if topN >= 0 {
			n = topN
		}
		out := cmd.OutOrStdout()
		if corpus {
			lines, err := inputLines(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			results, err := s.BatchKeywords(context.Background(), lines, n, true)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(out, results)
			}
			for i, res := range results {
				fmt.Fprintf(out, "%d\t%s\n", i, formatResult(res))
			}
			return nil
		}
		text, err := inputText(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		res, err := s.Keywords(text, n)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, res)
		}
		fmt.Fprintln(out, formatResult(res))
		return nil
	},
}

func inputLines(r io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

func formatResult(res *rank.Result) string {
	parts := make([]string, 0, len(res.WordScores))
	for _, ws := range res.WordScores {
		parts = append(parts, fmt.Sprintf("%s:%.4f", ws.Word, ws.Score))
	}
	return strings.Join(parts, " ")
}
