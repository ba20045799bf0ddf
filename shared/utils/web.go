package utils

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/itchan-dev/blogapi/shared/errors"
	"github.com/itchan-dev/blogapi/shared/logger"
	"github.com/itchan-dev/blogapi/shared/validation"
)

const serverErrorMessage = "Server error"

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []errors.FieldError `json:"errors,omitempty"`
}

// WriteJSON encodes v with the given status. Encoding failures become a 500.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"` + serverErrorMessage + `"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Message: message})
}

// WriteErrorAndStatusCode maps a typed outcome to its status. Untyped errors
// are faults: the detail is logged and the client gets a generic message.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		WriteJSON(w, validationErr.StatusCode(), errorResponse{Message: validationErr.Error(), Errors: validationErr.Fields})
		return
	}
	var withStatus *errors.ErrorWithStatusCode
	if stderrors.As(err, &withStatus) {
		WriteMessage(w, withStatus.StatusCode, withStatus.Message)
		return
	}
	// default error is 500
	logger.Log.Error("request failed", "error", err)
	WriteMessage(w, http.StatusInternalServerError, serverErrorMessage)
}

// DecodeValidate decodes a json body into body and runs its validate tags.
// A value of the wrong json type is reported against its field.
func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	return validation.Struct(body)
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			return validation.Field(body, typeErr.Field)
		}
		var sizeErr *http.MaxBytesError
		if stderrors.As(err, &sizeErr) {
			return errors.ErrPayloadTooLarge
		}
		logger.Log.Debug("invalid request body", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
