package api

import (
	"net/http"

	"goaltracker/internal/bot"
)

type verifyRequest struct {
	VerificationCode string `json:"verification_code"`
}

// handleVerify redeems a verification code issued by the bot, attaching the
// originating chat to the authenticated user. The code is single-use.
func (a *API) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	tgUser, err := a.store.RedeemVerificationCode(r.Context(), req.VerificationCode, currentUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	if a.tg != nil {
		if err := a.tg.SendMessage(tgUser.TgChatID, bot.LinkedText); err != nil {
			a.log.Error("link confirmation send failed", "chat_id", tgUser.TgChatID, "error", err)
		}
	}

	a.writeJSON(w, http.StatusOK, tgUser)
}
