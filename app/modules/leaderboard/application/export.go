package leaderboardservice

import (
	"context"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	"github.com/xuri/excelize/v2"
)

const metadataSheet = "Metadata"

var exportHeader = []any{"Rank", "Username", "Value", "Raw Value", "Player ID"}

// ExportWorkbook writes the current snapshot to an XLSX workbook, one sheet per category.
func (s *LeaderboardService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	ctx, span := s.startSpan(ctx, "ExportWorkbook")
	defer span.End()

	data, err := BuildWorkbook(s.GetLeaderboards(ctx))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return data, nil
}

// BuildWorkbook renders snap as XLSX bytes.
func BuildWorkbook(snap leaderboarddomain.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, category := range leaderboarddomain.Categories {
		sheet := category.Label
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
		}

		if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		for r, e := range snap.Entries(category.Key) {
			row := []any{e.Rank, e.Username, exportValue(e.Value), nil, e.PlayerID}
			if e.RawValue != nil {
				row[3] = *e.RawValue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("write %s row %d: %w", category.Key, r+1, err)
			}
		}
	}

	if _, err := f.NewSheet(metadataSheet); err != nil {
		return nil, fmt.Errorf("create metadata sheet: %w", err)
	}
	meta := snap.Metadata
	rows := [][]any{
		{"source", string(meta.Source)},
		{"connected", meta.Connected},
		{"successfulCategories", meta.SuccessfulCategories},
		{"totalCategories", meta.TotalCategories},
		{"responseTime", meta.ResponseTime},
		{"timestamp", meta.Timestamp},
		{"note", meta.Note},
		{"error", meta.Error},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(metadataSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write metadata: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func exportValue(v leaderboarddomain.Value) any {
	if v.IsText() {
		return v.String()
	}
	return v.Number()
}
