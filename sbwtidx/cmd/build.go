// Copyright © 2024 the sbwt authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shenwei356/sbwt/construct"
	"github.com/shenwei356/sbwt/sbwt"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an SBWT index from FASTA/FASTQ k-mer sets",
	Long: `Build an SBWT index from FASTA/FASTQ k-mer sets

Extracts every valid length-k window from the input sequence file(s),
deduplicates them, sorts them in colex or lex order, and writes the
resulting succinct index to -o/--out-file.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		timeStart := time.Now()
		defer func() {
			if opt.Verbose {
				log.Infof("elapsed time: %s", time.Since(timeStart))
			}
		}()

		k := getFlagPositiveInt(cmd, "kmer-len")
		lex := getFlagBool(cmd, "lex")
		noStreaming := getFlagBool(cmd, "no-streaming-support")
		outFile := getFlagString(cmd, "out-file")
		if outFile == "" {
			fatalf("flag -o/--out-file is required")
		}

		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		if opt.Verbose {
			log.Infof("%d input file(s) given", len(files))
		}

		cfg := construct.Config{
			K:                     k,
			Colex:                 !lex,
			BuildStreamingSupport: !noStreaming,
			ShowProgress:          opt.Verbose,
		}

		result, err := construct.FromFiles(cfg, files)
		checkError(errors.Wrap(err, "building k-mer set"))

		if opt.Verbose {
			log.Infof("indexed %d k-mers into %d columns", result.NKmers, result.A.Len())
		}

		idx, err := sbwt.New(result.A, result.C, result.G, result.T, result.SGStarts, result.K, result.NKmers, result.Colex)
		checkError(errors.Wrap(err, "assembling index"))

		outfh, err := xopen.Wopen(outFile)
		checkError(errors.Wrap(err, outFile))
		defer outfh.Close()

		n, err := idx.Serialize(outfh)
		checkError(errors.Wrap(err, "writing index"))
		if opt.Verbose {
			log.Infof("wrote %d bytes to %s", n, outFile)
		}
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().IntP("kmer-len", "k", 31, "k-mer length")
	buildCmd.Flags().BoolP("lex", "", false, "build over lex-sorted k-mers instead of colex-sorted")
	buildCmd.Flags().BoolP("no-streaming-support", "", false, "do not compute suffix-group marks (disables stream search)")
	buildCmd.Flags().StringP("out-file", "o", "", "output index file")
}
