package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rickreisdev/budget-smart-cycle/internal/cycle"
	"github.com/rickreisdev/budget-smart-cycle/internal/models"
	"github.com/rickreisdev/budget-smart-cycle/internal/store"
	"github.com/rickreisdev/budget-smart-cycle/internal/util"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves ledger entries: incomes, fixed expenses, card
// purchases (installment and recurring) and casual spending.
type TransactionHandler struct {
	Store           *store.Store
	MaxInstallments int
}

func NewTransactionHandler(st *store.Store, maxInstallments int) *TransactionHandler {
	if maxInstallments <= 0 {
		maxInstallments = 120
	}
	return &TransactionHandler{Store: st, MaxInstallments: maxInstallments}
}

// ---------- request/response shapes ----------

type createTransactionReq struct {
	Type         string `json:"type" binding:"required,oneof=income fixed card casual"`
	Description  string `json:"description" binding:"required"`
	Amount       string `json:"amount" binding:"required"` // decimal string, per installment
	IsRecurrent  bool   `json:"is_recurrent"`
	Installments int    `json:"installments"`
	IdealDay     int    `json:"ideal_day"`
}

type transactionResp struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`
	Description        string    `json:"description"` // rendered with (k/n) suffix
	BaseDescription    string    `json:"base_description"`
	AmountCents        int64     `json:"amount_cents"`
	Amount             string    `json:"amount"`
	Date               string    `json:"date"`
	IsRecurrent        bool      `json:"is_recurrent"`
	Installments       int       `json:"installments"`
	CurrentInstallment int       `json:"current_installment"`
	IdealDay           int       `json:"ideal_day,omitempty"`
	PurchaseGroupID    string    `json:"purchase_group_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:                 t.ID,
		Type:               t.Type,
		Description:        cycle.DisplayDescription(t.Description, t.CurrentInstallment, t.Installments),
		BaseDescription:    t.Description,
		AmountCents:        t.Amount,
		Amount:             util.FormatAmount(t.Amount),
		Date:               t.Date,
		IsRecurrent:        t.IsRecurrent,
		Installments:       t.Installments,
		CurrentInstallment: t.CurrentInstallment,
		IdealDay:           t.IdealDay,
		PurchaseGroupID:    t.PurchaseGroupID,
		CreatedAt:          t.CreatedAt,
	}
}

// ---------- create ----------

// CreateTransaction records a new entry in the profile's current cycle. A
// non-recurrent card purchase with N installments materializes N entries at
// once, one per future cycle.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parâmetros inválidos")
		return
	}

	req.Description = strings.TrimSpace(req.Description)
	if err := util.ValidateDescription(req.Description); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Preencha a descrição corretamente")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil || util.ValidateAmountCents(amount) != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe um valor válido")
		return
	}

	profile, err := h.Store.ProfileByUserID(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar perfil")
		return
	}
	start, err := cycle.Parse(profile.CurrentCycle)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Ciclo atual inválido")
		return
	}

	idealDay := req.IdealDay
	if idealDay == 0 {
		idealDay = profile.IdealDay
	}
	if err := util.ValidateIdealDay(idealDay); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dia ideal deve estar entre 1 e 31")
		return
	}

	var drafts []models.Transaction
	switch {
	case req.Type == models.TypeCard && req.IsRecurrent:
		drafts = []models.Transaction{cycle.NewRecurring(user.ID, req.Description, amount, start, idealDay)}
	case req.Type == models.TypeCard:
		count := req.Installments
		if count == 0 {
			count = 1
		}
		if err := util.ValidateInstallments(count, h.MaxInstallments); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Número de parcelas inválido")
			return
		}
		drafts = cycle.ScheduleInstallments(user.ID, req.Description, amount, count, start, idealDay)
	default:
		drafts = []models.Transaction{{
			ID:                 uuid.New().String(),
			UserID:             user.ID,
			Type:               req.Type,
			Description:        req.Description,
			Amount:             amount,
			Date:               start.FirstDay(),
			Installments:       1,
			CurrentInstallment: 1,
		}}
	}

	if err := h.Store.InsertTransactions(drafts); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao salvar, tente novamente")
		return
	}

	items := make([]transactionResp, 0, len(drafts))
	for i := range drafts {
		items = append(items, toTransactionResp(&drafts[i]))
	}

	util.Success(c, util.Response{
		"transactions": items,
	})
}

// ---------- list ----------

// ListTransactions filters by type, cycle and recurrence. installments=multi
// restricts to installment plans, matching the dedicated listing pages.
// When a cycle is given the response carries that cycle's totals.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	filter := store.TransactionFilter{}

	txType := c.Query("type")
	switch txType {
	case models.TypeIncome, models.TypeFixed, models.TypeCard, models.TypeCasual:
		filter.Type = txType
	case "":
	default:
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Tipo inválido")
		return
	}

	if cycleStr := c.Query("cycle"); cycleStr != "" {
		if err := util.ValidateCycle(cycleStr); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Ciclo deve estar no formato YYYY-MM")
			return
		}
		filter.Cycle = cycleStr
	}

	switch c.Query("recurrent") {
	case "true":
		v := true
		filter.Recurrent = &v
	case "false":
		v := false
		filter.Recurrent = &v
	}

	if c.Query("installments") == "multi" {
		filter.MinInstallments = 1
	}

	txs, err := h.Store.Transactions(user.ID, filter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar transações")
		return
	}

	items := make([]transactionResp, 0, len(txs))
	var totalCents int64
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
		totalCents += txs[i].Amount
	}

	resp := util.Response{
		"items":       items,
		"total_cents": totalCents,
		"total":       util.FormatAmount(totalCents),
	}

	if filter.Cycle != "" {
		profile, err := h.Store.ProfileByUserID(user.ID)
		if err == nil {
			parsed, perr := cycle.Parse(filter.Cycle)
			if perr == nil {
				all, aerr := h.Store.Transactions(user.ID, store.TransactionFilter{Cycle: filter.Cycle})
				if aerr == nil {
					initial := int64(0)
					if filter.Cycle == profile.CurrentCycle {
						initial = profile.InitialIncome
					}
					resp["summary"] = totalsResponse(cycle.ComputeTotals(initial, all, parsed))
				}
			}
		}
	}

	util.Success(c, resp)
}

// ---------- update ----------

type updateTransactionReq struct {
	Description  string `json:"description" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	Installments int    `json:"installments"`
}

// UpdateTransaction edits an entry. For installment plans the edit applies
// to the whole purchase group: a changed installment count deletes the group
// and regenerates it from the purchase's original start cycle; otherwise the
// new description/amount is patched onto every entry of the group.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	tx, err := h.Store.TransactionByID(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Transação não encontrada")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar transação")
		}
		return
	}

	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parâmetros inválidos")
		return
	}

	req.Description = strings.TrimSpace(cycle.StripInstallmentSuffix(req.Description))
	if err := util.ValidateDescription(req.Description); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Preencha a descrição corretamente")
		return
	}
	amount, err := util.ParseAmount(req.Amount)
	if err != nil || util.ValidateAmountCents(amount) != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe um valor válido")
		return
	}

	if tx.IsInstallment() {
		newCount := req.Installments
		if newCount == 0 {
			newCount = tx.Installments
		}
		if err := util.ValidateInstallments(newCount, h.MaxInstallments); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Número de parcelas inválido")
			return
		}

		if newCount != tx.Installments {
			// Regenerate the full plan from the original start cycle, which
			// is recoverable from this entry's date and position.
			entryCycle, err := cycle.Parse(tx.Date[:7])
			if err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Data da transação inválida")
				return
			}
			startCycle := entryCycle.AddMonths(-(tx.CurrentInstallment - 1))
			drafts := cycle.ScheduleInstallments(user.ID, req.Description, amount, newCount, startCycle, tx.IdealDay)

			if tx.PurchaseGroupID != "" {
				err = h.Store.ReplaceGroup(user.ID, tx.PurchaseGroupID, drafts)
			} else {
				// legacy rows without a group id: fall back to the value
				// tuple match
				if err = h.Store.DeleteLegacyGroup(user.ID, tx.Description, tx.Amount); err == nil {
					err = h.Store.InsertTransactions(drafts)
				}
			}
			if err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao salvar, tente novamente")
				return
			}
		} else {
			patch := map[string]interface{}{
				"description": req.Description,
				"amount":      amount,
			}
			if tx.PurchaseGroupID != "" {
				err = h.Store.PatchGroup(user.ID, tx.PurchaseGroupID, patch)
			} else {
				// legacy rows without a group id: scope the patch to the
				// value tuple, never to "all ungrouped rows"
				err = h.Store.PatchLegacyGroup(user.ID, tx.Description, tx.Amount, patch)
			}
			if err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao salvar, tente novamente")
				return
			}
		}
	} else {
		patch := map[string]interface{}{
			"description": req.Description,
			"amount":      amount,
		}
		if err := h.Store.PatchTransaction(user.ID, id, patch); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao salvar, tente novamente")
			return
		}
	}

	util.Success(c, util.Response{
		"message": "Transação atualizada com sucesso",
	})
}

// ---------- delete ----------

// DeleteTransaction removes an entry. Deleting one installment removes the
// whole purchase group, since a partially paid plan makes no sense in the
// ledger.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Param("id")
	tx, err := h.Store.TransactionByID(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Transação não encontrada")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar transação")
		}
		return
	}

	if tx.IsInstallment() {
		if tx.PurchaseGroupID != "" {
			err = h.Store.DeleteGroup(user.ID, tx.PurchaseGroupID)
		} else {
			err = h.Store.DeleteLegacyGroup(user.ID, tx.Description, tx.Amount)
		}
	} else {
		err = h.Store.DeleteTransaction(user.ID, id)
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao remover")
		return
	}

	util.Success(c, util.Response{
		"message": "Transação removida com sucesso",
	})
}
