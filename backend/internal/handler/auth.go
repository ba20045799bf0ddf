package handler

import (
	"net/http"

	"github.com/itchan-dev/blogapi/shared/api"
	"github.com/itchan-dev/blogapi/shared/domain"
	"github.com/itchan-dev/blogapi/shared/utils"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body api.SignupRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), domain.SignupData{Name: body.Name, Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.SignupResponse{
		Message: "User created successfully",
		User:    api.UserSummary{Id: user.Id, Email: user.Email},
	})
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var body api.SigninRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.Signin(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.SigninResponse{Message: "Login successful", Token: token})
}
