package ui

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mydehq/subrename/internal/types"
)

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

// PlanTable renders rename operations with their language and status.
func PlanTable(ops []types.RenameOperation) string {
	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		lang := "-"
		if op.Language != "" {
			lang = op.Language + " (" + op.LanguageSource.String() + ")"
		}
		rows = append(rows, []string{
			strconv.Itoa(op.Index + 1),
			BaseName(op.SourcePath),
			BaseName(op.TargetPath),
			lang,
			op.Status.String(),
		})
	}
	return renderTable(
		[]string{"#", "Subtitle", "New name", "Language", "Status"},
		rows,
		[]columnAlignment{alignRight},
	)
}

// ScanTable renders the classified files of a directory side by side.
func ScanTable(videos, subtitles []types.MediaFile) string {
	n := max(len(videos), len(subtitles))
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := []string{strconv.Itoa(i + 1), "", ""}
		if i < len(videos) {
			row[1] = videos[i].Name
		}
		if i < len(subtitles) {
			row[2] = subtitles[i].Name
		}
		rows = append(rows, row)
	}
	return renderTable(
		[]string{"#", "Video", "Subtitle"},
		rows,
		[]columnAlignment{alignRight},
	)
}

// BaseName returns the final element of a local or remote path.
func BaseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
