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
	"bufio"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shenwei356/sbwt/sbwt"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Look up single k-mers in an SBWT index",
	Long: `Look up single k-mers in an SBWT index

Each k-mer is either given on the command line (after -f/--kmers-file is
consumed, if any) or read line-by-line from a file. For every k-mer, the
index's column number is printed, or -1 if the k-mer is not indexed or
contains a character outside A/C/G/T.

`,
	Run: func(cmd *cobra.Command, args []string) {
		indexFile := getFlagString(cmd, "index")
		if indexFile == "" {
			fatalf("flag -x/--index is required")
		}
		kmersFile := getFlagString(cmd, "kmers-file")

		idxfh, err := xopen.Ropen(indexFile)
		checkError(errors.Wrap(err, indexFile))
		defer idxfh.Close()

		idx, err := sbwt.Load(idxfh)
		checkError(errors.Wrap(err, "loading index"))

		var kmers []string
		if kmersFile != "" {
			fh, err := xopen.Ropen(kmersFile)
			checkError(errors.Wrap(err, kmersFile))
			scanner := bufio.NewScanner(fh)
			for scanner.Scan() {
				line := scanner.Text()
				if line != "" {
					kmers = append(kmers, line)
				}
			}
			checkError(scanner.Err())
			fh.Close()
		}
		kmers = append(kmers, args...)

		for _, km := range kmers {
			if int64(len(km)) < idx.GetK() {
				log.Warningf("skipping k-mer shorter than k: %s", km)
				continue
			}
			col, err := idx.Search([]byte(km))
			checkError(err)
			fmt.Printf("%s\t%d\n", km, col)
		}
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("index", "x", "", "SBWT index file")
	searchCmd.Flags().StringP("kmers-file", "f", "", "file of k-mers, one per line")
}
