/*
Copyright © 2025 Ken'ichiro Oyama <k1lowxb@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/paraicon"
	"github.com/k1LoW/paraicon/config"
	"github.com/k1LoW/paraicon/handler/confirm"
	"github.com/k1LoW/paraicon/version"
	"github.com/k1LoW/tail"
	"github.com/mattn/go-colorable"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

// latest log lines kept for the error report
const historySize = 100

var tb = tail.New(historySize)

var rootCmd = &cobra.Command{
	Use:           version.Name,
	Short:         "paraicon generates the PARA web app icons",
	Long:          `paraicon generates square PNG icons with centered text for the web app manifest, one file per size, in the current directory.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(
			confirm.New(cmd.OutOrStdout(), slogmulti.Fanout(
				slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}),
				slog.NewJSONHandler(tb, &slog.HandlerOptions{Level: slog.LevelDebug}),
			)),
		)
		cfg, err := config.Default()
		if err != nil {
			return err
		}
		g, err := paraicon.New(cfg, paraicon.WithLogger(logger))
		if err != nil {
			return err
		}
		_, err = g.Run()
		return err
	},
}

type errorData struct {
	LatestLogs  []any     `json:"latest_logs"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stderr := colorable.NewColorableStderr()
		_, _ = color.New(color.FgRed).Fprintf(stderr, "%v\n", err)
		b, err := json.MarshalIndent(newErrorData(err), "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "%v\n", err)
		} else {
			_, _ = fmt.Fprintf(stderr, "%s\n", b)
		}
		os.Exit(1)
	}
}

func newErrorData(err error) *errorData {
	var latestLogs []any
	for _, line := range tb.Lines() {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			latestLogs = append(latestLogs, line)
		} else {
			latestLogs = append(latestLogs, m)
		}
	}
	return &errorData{
		LatestLogs:  latestLogs,
		StackTraces: errors.StackTraces(err),
		CreatedAt:   time.Now(),
		Version:     version.Version,
		Revision:    version.Revision,
	}
}
