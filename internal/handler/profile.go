package handler

import (
	"errors"
	"net/http"

	"github.com/rickreisdev/budget-smart-cycle/internal/store"
	"github.com/rickreisdev/budget-smart-cycle/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the user's budget profile.
type ProfileHandler struct {
	Store *store.Store
}

func NewProfileHandler(st *store.Store) *ProfileHandler {
	return &ProfileHandler{Store: st}
}

// GetMe returns the authenticated user's account info.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"created_at":   user.CreatedAt,
		},
	})
}

// GetProfile returns the budget profile with formatted amounts.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
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

	util.Success(c, util.Response{
		"profile": gin.H{
			"current_cycle":        profile.CurrentCycle,
			"ideal_day":            profile.IdealDay,
			"total_saved_cents":    profile.TotalSaved,
			"total_saved":          util.FormatAmount(profile.TotalSaved),
			"initial_income_cents": profile.InitialIncome,
			"initial_income":       util.FormatAmount(profile.InitialIncome),
			"monthly_salary_cents": profile.MonthlySalary,
			"monthly_salary":       util.FormatAmount(profile.MonthlySalary),
		},
	})
}

type updateProfileReq struct {
	MonthlySalary *string `json:"monthly_salary"` // decimal string
	InitialIncome *string `json:"initial_income"`
	IdealDay      *int    `json:"ideal_day"`
	DisplayName   *string `json:"display_name"`
}

// UpdateProfile applies per-field edits: monthly salary, initial income,
// ideal card day and display name. Only fields present in the body change.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parâmetros inválidos")
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

	if req.MonthlySalary != nil {
		cents, err := util.ParseAmount(*req.MonthlySalary)
		if err != nil || cents < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe um salário válido")
			return
		}
		profile.MonthlySalary = cents
	}
	if req.InitialIncome != nil {
		cents, err := util.ParseAmount(*req.InitialIncome)
		if err != nil || cents < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe uma renda válida")
			return
		}
		profile.InitialIncome = cents
	}
	if req.IdealDay != nil {
		if err := util.ValidateIdealDay(*req.IdealDay); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dia ideal deve estar entre 1 e 31")
			return
		}
		profile.IdealDay = *req.IdealDay
	}

	if err := h.Store.SaveProfile(profile); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao salvar perfil")
		return
	}

	if req.DisplayName != nil {
		if err := h.Store.DB().Model(user).Update("display_name", *req.DisplayName).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao salvar perfil")
			return
		}
	}

	util.Success(c, util.Response{
		"message": "Perfil atualizado com sucesso",
	})
}
