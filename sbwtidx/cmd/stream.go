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
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/sbwt/sbwt"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Search every overlapping k-mer window of FASTA/FASTQ records",
	Long: `Search every overlapping k-mer window of FASTA/FASTQ records

For every record, prints one line per length-k window in left-to-right
order, tab-separated: record name, window start position, column number
(or -1).

`,
	Run: func(cmd *cobra.Command, args []string) {
		indexFile := getFlagString(cmd, "index")
		if indexFile == "" {
			fatalf("flag -x/--index is required")
		}

		idxfh, err := xopen.Ropen(indexFile)
		checkError(errors.Wrap(err, indexFile))
		idx, err := sbwt.Load(idxfh)
		checkError(errors.Wrap(err, "loading index"))
		idxfh.Close()

		if !idx.HasStreamingQuerySupport() {
			checkError(sbwt.ErrStreamingUnsupported)
		}

		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		for _, file := range files {
			reader, err := fastx.NewDefaultReader(file)
			checkError(errors.Wrap(err, file))

			for {
				record, err := reader.Read()
				if err != nil {
					if err == io.EOF {
						break
					}
					checkError(errors.Wrap(err, file))
				}

				cols, err := idx.StreamingSearch(record.Seq.Seq)
				checkError(err)
				for i, col := range cols {
					fmt.Printf("%s\t%d\t%d\n", record.Name, i, col)
				}
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(streamCmd)

	streamCmd.Flags().StringP("index", "x", "", "SBWT index file")
}
