// Package buildinit registers the built-in segmentation engines.
package buildinit

import (
	_ "github.com/szuwgh/hanword/pkg/tokenizer/gojieba"
	_ "github.com/szuwgh/hanword/pkg/tokenizer/gse"
)
