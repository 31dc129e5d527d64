package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/rickreisdev/budget-smart-cycle/internal/cycle"
	"github.com/rickreisdev/budget-smart-cycle/internal/models"
	"github.com/rickreisdev/budget-smart-cycle/internal/store"
	"github.com/rickreisdev/budget-smart-cycle/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves CSV/XLSX exports of the full transaction history.
type ExportHandler struct {
	Store *store.Store
}

func NewExportHandler(st *store.Store) *ExportHandler {
	return &ExportHandler{Store: st}
}

var typeLabels = map[string]string{
	models.TypeIncome: "Renda",
	models.TypeFixed:  "Gasto Fixo",
	models.TypeCard:   "Cartão",
	models.TypeCasual: "Gasto Avulso",
}

func exportRow(t *models.Transaction) []string {
	recurrent := "não"
	if t.IsRecurrent {
		recurrent = "sim"
	}
	installment := ""
	if t.Installments > 1 {
		installment = fmt.Sprintf("%d/%d", t.CurrentInstallment, t.Installments)
	}
	return []string{
		typeLabels[t.Type],
		cycle.DisplayDescription(t.Description, t.CurrentInstallment, t.Installments),
		util.FormatAmount(t.Amount),
		t.Date,
		recurrent,
		installment,
	}
}

var exportHeaders = []string{"Tipo", "Descrição", "Valor", "Data", "Recorrente", "Parcela"}

// ExportCSV streams all transactions as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txs, err := h.Store.Transactions(user.ID, store.TransactionFilter{})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar transações")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so spreadsheet apps pick up the accents
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for i := range txs {
		writer.Write(exportRow(&txs[i]))
	}
}

// ExportXLSX serves all transactions as a spreadsheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txs, err := h.Store.Transactions(user.ID, store.TransactionFilter{})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar transações")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transações"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao criar planilha")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range txs {
		row := idx + 2
		for col, value := range exportRow(&txs[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "F", 10)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao exportar")
	}
}
