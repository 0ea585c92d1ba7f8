package services

import (
	"bytes"
	"fmt"

	"diligencias_app_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportEntitiesExcel builds an xlsx workbook with the user's entities, one
// sheet per kind (Atestados, Personas, Letrados), newest first.
func ExportEntitiesExcel(db *gorm.DB, userID string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	// --- Atestados ---
	sheetAtestados := "Atestados"
	f.SetSheetName("Sheet1", sheetAtestados)

	var atestados []models.CaseRecord
	if err := db.Where("usuario = ?", userID).Order("created_at DESC").Find(&atestados).Error; err != nil {
		return nil, fmt.Errorf("failed to load atestados: %w", err)
	}

	writeHeader(f, sheetAtestados, []string{"Número", "Delito", "Juzgado", "Creado"})
	for i, a := range atestados {
		row := i + 2
		f.SetCellValue(sheetAtestados, fmt.Sprintf("A%d", row), a.Numero)
		f.SetCellValue(sheetAtestados, fmt.Sprintf("B%d", row), a.Delito)
		f.SetCellValue(sheetAtestados, fmt.Sprintf("C%d", row), a.Juzgado)
		f.SetCellValue(sheetAtestados, fmt.Sprintf("D%d", row), a.CreatedAt.Format("2006-01-02 15:04"))
	}
	f.SetCellStyle(sheetAtestados, "A1", "D1", headerStyle)
	f.SetColWidth(sheetAtestados, "A", "D", 24)

	// --- Personas ---
	sheetPersonas := "Personas"
	f.NewSheet(sheetPersonas)

	var personas []models.Person
	if err := db.Where("usuario = ?", userID).Order("created_at DESC").Find(&personas).Error; err != nil {
		return nil, fmt.Errorf("failed to load personas: %w", err)
	}

	writeHeader(f, sheetPersonas, []string{"Nombre", "Primer apellido", "Segundo apellido", "Documento", "Relación", "Atestado", "Creado"})
	for i, p := range personas {
		row := i + 2
		f.SetCellValue(sheetPersonas, fmt.Sprintf("A%d", row), p.Nombre)
		f.SetCellValue(sheetPersonas, fmt.Sprintf("B%d", row), p.Apellido1)
		f.SetCellValue(sheetPersonas, fmt.Sprintf("C%d", row), p.Apellido2)
		f.SetCellValue(sheetPersonas, fmt.Sprintf("D%d", row), p.Documento)
		f.SetCellValue(sheetPersonas, fmt.Sprintf("E%d", row), p.Relacion)
		f.SetCellValue(sheetPersonas, fmt.Sprintf("F%d", row), p.Atestado)
		f.SetCellValue(sheetPersonas, fmt.Sprintf("G%d", row), p.CreatedAt.Format("2006-01-02 15:04"))
	}
	f.SetCellStyle(sheetPersonas, "A1", "G1", headerStyle)
	f.SetColWidth(sheetPersonas, "A", "G", 20)

	// --- Letrados ---
	sheetLetrados := "Letrados"
	f.NewSheet(sheetLetrados)

	var letrados []models.Lawyer
	if err := db.Where("usuario = ?", userID).Order("created_at DESC").Find(&letrados).Error; err != nil {
		return nil, fmt.Errorf("failed to load letrados: %w", err)
	}

	writeHeader(f, sheetLetrados, []string{"Nombre", "Nº colegiado", "Teléfono", "Tipo", "Atestado", "Creado"})
	for i, l := range letrados {
		row := i + 2
		f.SetCellValue(sheetLetrados, fmt.Sprintf("A%d", row), l.Nombre)
		f.SetCellValue(sheetLetrados, fmt.Sprintf("B%d", row), l.Numero)
		f.SetCellValue(sheetLetrados, fmt.Sprintf("C%d", row), l.Telefono)
		f.SetCellValue(sheetLetrados, fmt.Sprintf("D%d", row), l.LetradoTipo)
		f.SetCellValue(sheetLetrados, fmt.Sprintf("E%d", row), l.Atestado)
		f.SetCellValue(sheetLetrados, fmt.Sprintf("F%d", row), l.CreatedAt.Format("2006-01-02 15:04"))
	}
	f.SetCellStyle(sheetLetrados, "A1", "F1", headerStyle)
	f.SetColWidth(sheetLetrados, "A", "F", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
}
