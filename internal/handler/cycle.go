package handler

import (
	"errors"
	"net/http"

	"github.com/rickreisdev/budget-smart-cycle/internal/cycle"
	"github.com/rickreisdev/budget-smart-cycle/internal/store"
	"github.com/rickreisdev/budget-smart-cycle/internal/util"

	"github.com/gin-gonic/gin"
)

// CycleHandler serves the cycle summary and the rollover.
type CycleHandler struct {
	Store *store.Store
}

func NewCycleHandler(st *store.Store) *CycleHandler {
	return &CycleHandler{Store: st}
}

func totalsResponse(t cycle.Totals) gin.H {
	return gin.H{
		"income_cents":    t.Income,
		"income":          util.FormatAmount(t.Income),
		"fixed_cents":     t.Fixed,
		"fixed":           util.FormatAmount(t.Fixed),
		"card_cents":      t.Card,
		"card":            util.FormatAmount(t.Card),
		"casual_cents":    t.Casual,
		"casual":          util.FormatAmount(t.Casual),
		"expenses_cents":  t.Expenses,
		"expenses":        util.FormatAmount(t.Expenses),
		"available_cents": t.Available,
		"available":       util.FormatAmount(t.Available),
	}
}

// GetSummary returns a cycle's totals; defaults to the current cycle. The
// profile's initial income only counts toward its own cycle.
func (h *CycleHandler) GetSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.Store.ProfileByUserID(user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Perfil não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar perfil")
		}
		return
	}

	cycleStr := c.DefaultQuery("cycle", profile.CurrentCycle)
	if err := util.ValidateCycle(cycleStr); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Ciclo deve estar no formato YYYY-MM")
		return
	}
	parsed, err := cycle.Parse(cycleStr)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Ciclo deve estar no formato YYYY-MM")
		return
	}

	txs, err := h.Store.Transactions(user.ID, store.TransactionFilter{Cycle: cycleStr})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar transações")
		return
	}

	initial := int64(0)
	if cycleStr == profile.CurrentCycle {
		initial = profile.InitialIncome
	}
	totals := cycle.ComputeTotals(initial, txs, parsed)

	util.Success(c, util.Response{
		"cycle":             cycleStr,
		"summary":           totalsResponse(totals),
		"total_saved_cents": profile.TotalSaved,
		"total_saved":       util.FormatAmount(profile.TotalSaved),
	})
}

type rollCycleReq struct {
	IncomeChoice string `json:"income_choice"` // none / monthly_salary / initial_income
}

// RollCycle closes the current cycle: saves a positive balance, purges
// casual spending, retires the elapsed installments, regenerates recurring
// purchases and advances the profile one month. The whole plan is applied in
// one database transaction.
func (h *CycleHandler) RollCycle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req rollCycleReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parâmetros inválidos")
			return
		}
	}

	choice, err := cycle.ParseIncomeChoice(req.IncomeChoice)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Escolha de renda inválida")
		return
	}

	profile, err := h.Store.ProfileByUserID(user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Perfil não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar perfil")
		}
		return
	}

	txs, err := h.Store.Transactions(user.ID, store.TransactionFilter{})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar transações")
		return
	}

	// the choice is already validated, so a failure here is bad stored data
	plan, err := cycle.BuildRollPlan(profile, txs, choice)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao iniciar novo ciclo")
		return
	}

	if err := h.Store.ApplyRollPlan(profile, plan); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao iniciar novo ciclo")
		return
	}

	util.Success(c, util.Response{
		"message":           "Novo ciclo iniciado!",
		"old_cycle":         plan.OldCycle.String(),
		"new_cycle":         plan.NewCycle.String(),
		"saved_cents":       plan.SavedDelta,
		"saved":             util.FormatAmount(plan.SavedDelta),
		"total_saved_cents": profile.TotalSaved,
		"total_saved":       util.FormatAmount(profile.TotalSaved),
		"removed_entries":   len(plan.DeleteIDs),
		"renewed_recurring": len(plan.Inserts),
	})
}
