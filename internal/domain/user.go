package domain

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

// User is a cooperative member or administrator.
type User struct {
	ID           string     `json:"_id"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	Role         Role       `json:"role"`
	IsFirstLogin bool       `json:"isFirstLogin"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsAdmin reports whether the user may administer the cooperative.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// MemberRef is the embedded member summary the backend attaches to
// accounts, loans and ledger entries.
type MemberRef struct {
	ID       string `json:"_id"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

// UnmarshalJSON accepts both the embedded object and a bare id string.
func (m *MemberRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = MemberRef{}
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*m = MemberRef{ID: id}
		return nil
	}

	type plain MemberRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = MemberRef(p)
	return nil
}

// LoginRequest is the sign-in form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,loose_email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// ChangePasswordRequest is the settings form for a signed-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"min=8,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=NewPassword"`
}

// SetupPasswordRequest completes the first-login flow with an emailed OTP.
type SetupPasswordRequest struct {
	Email           string `json:"email" validate:"strict_email"`
	Password        string `json:"password" validate:"min=8,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	OTPCode         string `json:"otpCode" validate:"otp"`
}

type SetupPasswordResponse struct {
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
	// SessionID is issued by the dashboard, not the backend, when Token
	// signed the member in.
	SessionID string `json:"sessionId,omitempty"`
}

// InviteMemberRequest creates a member who must then set a password.
type InviteMemberRequest struct {
	FullName string `json:"fullName" validate:"min=2,max=50"`
	Email    string `json:"email" validate:"required,strict_email"`
}
