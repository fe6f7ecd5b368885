package txlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ruzgar-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders the full transaction log into an Excel workbook,
// newest entries first.
func (r *Repository) ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	logs := r.ListAll(ctx)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "İşlem Kayıtları"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Tarih", "İşlem", "Raf", "Katman", "Ürün", "Kullanıcı", "Detay"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, entry := range logs {
		values := []any{
			entry.Timestamp.Format("02.01.2006 15:04:05"),
			string(entry.ActionType),
			entry.Shelf,
			entry.Layer,
			entry.ProductName,
			entry.Username,
			describeEntry(&entry),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel dosyası oluşturulamadı: %w", err)
	}
	return buf, nil
}

// describeEntry özetler: update için alan değişiklikleri, create/delete için
// ürün anlık görüntüsü, login/logout için oturum bilgisi.
func describeEntry(entry *models.TransactionLog) string {
	switch {
	case len(entry.Changes) > 0:
		parts := make([]string, 0, len(entry.Changes))
		for _, ch := range entry.Changes {
			parts = append(parts, fmt.Sprintf("%s: %v → %v", ch.Field, ch.OldValue, ch.NewValue))
		}
		return strings.Join(parts, "; ")
	case entry.ProductDetails != nil:
		raw, _ := json.Marshal(entry.ProductDetails)
		return string(raw)
	case entry.SessionInfo != nil:
		return fmt.Sprintf("IP: %s", entry.SessionInfo.IPAddress)
	default:
		return ""
	}
}
