package flows

import "github.com/dmitrijs2005/noteapp/internal/client/models"

const (
	MsgInvalidEmail  = "Enter a valid email"
	MsgOTPSent       = "OTP sent successfully"
	MsgRequestFailed = "Request failed"
	MsgInvalidCode   = "Please enter a valid 6-digit OTP"
	MsgVerified      = "Verification successful! Redirecting..."
	MsgNoToken       = "Verification failed: No token received"
	MsgVerifyFailed  = "Verification failed"
	MsgOTPResent     = "OTP resent successfully"
	MsgResendFailed  = "Resend failed"
)

func success(text string) models.Message { return models.Success(text) }
func failure(text string) models.Message { return models.Failure(text) }
