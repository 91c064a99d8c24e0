package models

// OTPRequest is the body of POST /auth/request-otp. Name and DateOfBirth are
// sent only by the signup flow.
type OTPRequest struct {
	Email       string `json:"email" validate:"otpemail"`
	Name        string `json:"name,omitempty"`
	DateOfBirth string `json:"dob,omitempty"`
}

// VerifyRequest is the body of POST /auth/verify-otp.
type VerifyRequest struct {
	Email string `json:"email" validate:"otpemail"`
	Code  string `json:"code" validate:"otpcode"`
}

// MessageResponse is the generic {message} reply, also used for error bodies.
type MessageResponse struct {
	Message string `json:"message"`
}

// VerifyResponse carries the bearer token and, optionally, server-asserted
// profile fields.
type VerifyResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user,omitempty"`
}
