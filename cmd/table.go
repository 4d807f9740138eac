package cmd

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kasuboski/renamez/pkg/download"
	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/renamez/pkg/workflow"
)

const unknown = "-"

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderEntries lists entries with the name each would be renamed to
func renderEntries(entries []download.Status) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range workflow.Order(entries) {
		proposal := workflow.Propose(entry)

		proposed := unknown
		if proposal.Parsed {
			proposed = proposal.Proposed
		}

		added := unknown
		if entry.HasAddedAt() {
			added = humanize.Time(entry.AddedAt)
		}

		rows = append(rows, []string{
			entry.ID,
			entry.Name,
			proposed,
			added,
			humanize.Bytes(uint64(max(entry.Size, 0))),
		})
	}

	return renderTable(
		[]string{"ID", "Name", "Proposed", "Added", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

// renderProposals lists what a rename session would ask about
func renderProposals(proposals []workflow.Proposal) string {
	rows := make([][]string, 0, len(proposals))
	for _, p := range proposals {
		proposed := p.Proposed
		action := "rename"
		switch {
		case !p.Parsed:
			proposed = unknown
			action = "unparseable"
		case !p.Changed():
			action = "unchanged"
		}

		rows = append(rows, []string{p.Entry.ID, p.Entry.Name, proposed, action})
	}

	return renderTable([]string{"ID", "Original", "New", "Action"}, rows, nil)
}

// renderHistory lists recorded renames
func renderHistory(renames []*model.Rename) string {
	rows := make([][]string, 0, len(renames))
	for _, r := range renames {
		created := unknown
		if r.CreatedAt != nil {
			created = humanize.Time(*r.CreatedAt)
		}

		edited := ""
		if r.Edited {
			edited = "yes"
		}

		rows = append(rows, []string{
			strconv.Itoa(int(r.ID)),
			created,
			r.Source,
			r.FromName,
			r.ToName,
			edited,
		})
	}

	return renderTable(
		[]string{"ID", "When", "Source", "From", "To", "Edited"},
		rows,
		[]columnAlignment{alignRight},
	)
}
