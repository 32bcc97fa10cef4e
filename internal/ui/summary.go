package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nconklindev/ifprofile/internal/types"
)

// RenderSummary formats a finished run. Paths longer than the terminal allows
// are shortened from the left.
func RenderSummary(summary *types.Summary, width int) string {
	var s strings.Builder

	s.WriteString(SuccessStyle.Render("Report Generation Completed"))
	s.WriteString("\n\n")

	if summary == nil {
		return s.String()
	}

	maxPathLen := width - 20 // Leave room for padding and borders
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	s.WriteString(fmt.Sprintf("Folder: %s\n\n", truncatePath(summary.Folder, maxPathLen)))
	for _, r := range summary.Results {
		s.WriteString(fmt.Sprintf("%s -> %s (%d sheets, %d rows)\n",
			filepath.Base(r.InputFile),
			truncatePath(r.OutputFile, maxPathLen),
			r.SheetsRead,
			r.RecordsWritten))
	}
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Workbooks: %d\n", len(summary.Results)))
	s.WriteString(fmt.Sprintf("Rows written: %d\n", summary.TotalRecords))

	return s.String()
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}
