package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sharecut/internal/layout"
	"sharecut/internal/timecode"
	"sharecut/internal/timeline"
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

// renderIntervals tabulates a timeline with human-readable times.
func renderIntervals(tl timeline.Timeline) string {
	rows := make([][]string, 0, len(tl.Intervals))
	for i, iv := range tl.Intervals {
		end, duration := "end of recording", "-"
		if !iv.End.IsOpen() {
			end = timecode.Format(iv.End.Seconds())
			duration = timecode.Format(iv.Duration())
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			timecode.Format(iv.Start),
			end,
			duration,
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Duration"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	)
}

// renderRegions tabulates the canvas regions of a layout.
func renderRegions(geometry layout.Geometry) string {
	regions := geometry.Regions()
	rows := make([][]string, 0, len(regions))
	for _, region := range regions {
		rows = append(rows, []string{
			region.Name,
			region.Size().String(),
			strconv.Itoa(region.X) + "," + strconv.Itoa(region.Y),
			strconv.Itoa(region.Z),
			string(region.Align),
		})
	}
	return renderTable(
		[]string{"Region", "Size", "Position", "Z", "Align"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}
