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
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
	prettytable "github.com/tatsushid/go-prettytable"

	"github.com/shenwei356/sbwt/sbwt"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print information about an SBWT index file",
	Long: `Print information about an SBWT index file

`,
	Run: func(cmd *cobra.Command, args []string) {
		validate := getFlagBool(cmd, "validate")

		columns := []prettytable.Column{
			{Header: "file"},
			{Header: "k", AlignRight: true},
			{Header: "orientation"},
			{Header: "columns", AlignRight: true},
			{Header: "k-mers", AlignRight: true},
			{Header: "streaming", AlignRight: true},
			{Header: "C-array"},
		}
		tbl, err := prettytable.NewTable(columns...)
		checkError(err)
		tbl.Separator = "  "

		for _, file := range args {
			fh, err := xopen.Ropen(file)
			checkError(errors.Wrap(err, file))
			idx, err := sbwt.Load(fh)
			checkError(errors.Wrap(err, "loading "+file))
			fh.Close()

			if validate {
				checkError(errors.Wrap(idx.Validate(), "validating "+file))
			}

			orientation := "lex"
			if idx.IsColex() {
				orientation = "colex"
			}

			tbl.AddRow(
				file,
				idx.GetK(),
				orientation,
				humanize.Comma(idx.NumberOfSubsets()),
				humanize.Comma(idx.NumberOfKmers()),
				idx.HasStreamingQuerySupport(),
				fmt.Sprintf("%v", idx.GetCArray()),
			)
		}
		os.Stdout.Write(tbl.Bytes())
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("validate", "", false, "independently re-derive and check the C array and structural invariants")
}
