// Package report renders a human-readable summary of a harvest run.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/JakeFAU/domain-harvester/internal/harvest"
)

var phaseOrder = []string{
	harvest.PhaseDirect,
	harvest.PhaseFeeds,
	harvest.PhaseDirectories,
	harvest.PhasePublisherFeeds,
}

// WriteMarkdown writes res as a Markdown document to w. runErr, when not nil,
// marks the run as interrupted.
func WriteMarkdown(w io.Writer, res harvest.Result, outputURI string, runErr error) error {
	md := markdown.NewMarkdown(w)

	md.H1("Domain Harvest Report")
	md.PlainText("")

	status := "complete"
	if runErr != nil {
		status = "interrupted: " + runErr.Error()
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + res.RunID.String() + "`"},
			{"Started", res.StartedAt.UTC().Format(time.RFC3339)},
			{"Duration", res.Duration.Round(time.Millisecond).String()},
			{"Fetches", strconv.Itoa(res.Fetches)},
			{"Domains", strconv.Itoa(len(res.Domains))},
			{"Output", outputURI},
			{"Status", status},
		},
	})
	md.PlainText("")

	md.H2("Domains added by phase")
	md.PlainText("")
	rows := make([][]string, 0, len(phaseOrder))
	for _, phase := range phaseOrder {
		rows = append(rows, []string{phase, strconv.Itoa(res.Added[phase])})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Phase", "Added"},
		Rows:   rows,
	})

	if err := md.Build(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
