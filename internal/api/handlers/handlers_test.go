package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-app-api/internal/api/response"
)

// newContext creates a test context with an optional JSON body
func newContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// parseAPIResponse parses the API response from the recorder
func parseAPIResponse(rec *httptest.ResponseRecorder) (*response.APIResponse, error) {
	var resp response.APIResponse
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	return &resp, err
}

// parseErrorResponse parses the error response from the recorder
func parseErrorResponse(rec *httptest.ResponseRecorder) (*response.ErrorResponse, error) {
	var resp response.ErrorResponse
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	return &resp, err
}

// decodeData unmarshals the data field of a success envelope into dest
func decodeData(rec *httptest.ResponseRecorder, dest interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, dest)
}
