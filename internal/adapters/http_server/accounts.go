package httpserver

import (
	"net/http"
	"time"

	"hotel_booking/internal/app"
)

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresAt time.Time   `json:"expires_at"`
	Account   accountJSON `json:"account"`
}

type profileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if !decode(w, r, &body) {
		return
	}
	a, err := h.Accounts.Register(r.Context(), SubjectFrom(r.Context()), app.Registration{
		Email: body.Email, FirstName: body.FirstName, LastName: body.LastName,
		Role: body.Role, Password: body.Password, Password2: body.Password2,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, accountOf(a))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if !decode(w, r, &body) {
		return
	}
	sess, err := h.Accounts.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token: sess.Token, TokenType: "Bearer", ExpiresAt: sess.ExpiresAt, Account: accountOf(sess.Account),
	})
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	a, err := h.Accounts.Me(r.Context(), SubjectFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accountOf(a))
}

func (h *Handlers) updateMe(w http.ResponseWriter, r *http.Request) {
	h.updateProfile(w, r, SubjectFrom(r.Context()).AccountID)
}

func (h *Handlers) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.updateProfile(w, r, id)
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request, id int64) {
	var body profileRequest
	if !decode(w, r, &body) {
		return
	}
	a, err := h.Accounts.UpdateProfile(r.Context(), SubjectFrom(r.Context()), id, app.ProfileChange{
		FirstName: body.FirstName, LastName: body.LastName, Role: body.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accountOf(a))
}

func (h *Handlers) changePassword(w http.ResponseWriter, r *http.Request) {
	var body passwordRequest
	if !decode(w, r, &body) {
		return
	}
	if err := h.Accounts.ChangePassword(r.Context(), SubjectFrom(r.Context()), body.OldPassword, body.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deactivateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Accounts.Deactivate(r.Context(), SubjectFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
