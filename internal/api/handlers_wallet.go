/**
 * @description
 * This file contains the HTTP handlers for the wallet endpoints: balance
 * lookup, deposits, and withdrawals. All wallet endpoints require an
 * authenticated caller; the wallet is always the caller's own.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/app, internal/domain, internal/store: For service logic, models, and custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/givebridge/campaign-service/internal/app"
	"github.com/givebridge/campaign-service/internal/domain"
	"github.com/givebridge/campaign-service/internal/store"
)

// GetWalletHandler returns the caller's wallet, creating it on first touch.
func (h *CampaignHandlers) GetWalletHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	wallet, err := h.service.GetWallet(r.Context(), userID)
	if err != nil {
		log.Printf("level=error component=api endpoint=get_wallet outcome=failed user_id=%s err=%v", userID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, wallet)
}

// DepositHandler credits the caller's wallet.
func (h *CampaignHandlers) DepositHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req domain.WalletMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	newBalance, err := h.service.Deposit(r.Context(), userID, req.AmountCents)
	if err != nil {
		if errors.Is(err, app.ErrInvalidAmount) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("level=error component=api endpoint=wallet_deposit outcome=failed user_id=%s err=%v", userID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int64{"balance_cents": newBalance})
}

// WithdrawHandler debits the caller's wallet, rejecting overdrafts.
func (h *CampaignHandlers) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req domain.WalletMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	newBalance, err := h.service.Withdraw(r.Context(), userID, req.AmountCents)
	if err != nil {
		if errors.Is(err, app.ErrInvalidAmount) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, store.ErrInsufficientFunds) {
			h.writeError(w, http.StatusPaymentRequired, "Insufficient wallet balance")
			return
		}
		if errors.Is(err, store.ErrWalletNotFound) {
			h.writeError(w, http.StatusNotFound, "Wallet account not found")
			return
		}
		log.Printf("level=error component=api endpoint=wallet_withdraw outcome=failed user_id=%s err=%v", userID, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int64{"balance_cents": newBalance})
}
