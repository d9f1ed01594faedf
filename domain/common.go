package domain

import (
	"errors"
)

var (
	MessageUnauthorized         = "unauthorized access"
	MessageForbidden            = "forbidden access"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"

	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenInvalid  = errors.New("failed to token invalid")
	ErrTokenExpired  = errors.New("token has expired")
	ErrParseUUID     = errors.New("failed to parse UUID")
)
