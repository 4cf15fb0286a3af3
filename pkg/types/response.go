package types

import "github.com/yukselticaret/trendyshop-backend/pkg/notify"

type SuccessEnvelope struct {
	Data    any             `json:"data"`
	Notices []notify.Notice `json:"notices,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error   APIError        `json:"error"`
	Notices []notify.Notice `json:"notices,omitempty"`
}
