package exception

import (
	"fmt"
	"strings"
)

type CustomError struct {
	Status  int                    `json:"status"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Debug   string                 `json:"debug,omitempty"`
}

func (c CustomError) Error() string {
	msg := c.Message
	for k, v := range c.Params {
		msg = strings.ReplaceAll(msg, "$"+k, fmt.Sprintf("%v", v))
	}
	if c.Debug != "" {
		return msg + " | " + c.Debug
	} else {
		return msg
	}
}

const (
	// auth
	TokenNotValid         = "100"
	TokenNotValidMsg      = "Access token is not valid"
	TokenExpired          = "101"
	TokenExpiredMsg       = "Access token has expired"
	InvalidCredentials    = "102"
	InvalidCredentialsMsg = "User id or password is incorrect"

	// users
	UserAlreadyExists         = "110"
	UserAlreadyExistsMsg      = "User with id = $userId already exists"
	UserNotFound              = "111"
	UserNotFoundMsg           = "User with id = $userId not found"
	EmailSendFailed           = "112"
	EmailSendFailedMsg        = "Failed to send verification email to $email"
	VerificationCodeNotValid    = "113"
	VerificationCodeNotValidMsg = "Email verification code is not valid or has expired"

	// accounts
	AccountAlreadyLinked         = "200"
	AccountAlreadyLinkedMsg      = "Account $account is already linked for the current user"
	AccountVerificationFailed    = "201"
	AccountVerificationFailedMsg = "Brokerage rejected account verification: $reason"
	AggregatorUnavailable        = "202"
	AggregatorUnavailableMsg     = "Account aggregation service is temporarily unavailable"
	CredentialEncryptionFailed    = "203"
	CredentialEncryptionFailedMsg = "Failed to protect account credential"

	// rebalancing records
	RecordNotFound    = "300"
	RecordNotFoundMsg = "Rebalancing record with id = $recordId not found"

	// generic
	BadRequestBody           = "400"
	BadRequestBodyMsg        = "Failed to decode body"
	RequiredParamsMissing    = "401"
	RequiredParamsMissingMsg = "Required parameters are missing: $params"
	InvalidParameterValue    = "402"
	InvalidParameterValueMsg = "Value of parameter $param is invalid"
)
