// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Gender values accepted at registration
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Approval actions for POST /api/admin/approve
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// SettingsID is the fixed key of the settings row
const SettingsID = "singleton"

// Request types

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"min=2"`
	Codename string `json:"codename" validate:"min=2"`
	Gender   string `json:"gender" validate:"oneof=Male Female Other"`
	Wishlist string `json:"wishlist" validate:"min=5"`
}

// Nil fields are left unchanged
type UpdateProfileRequest struct {
	Codename *string `json:"codename,omitempty" validate:"omitnil,min=2"`
	Wishlist *string `json:"wishlist,omitempty" validate:"omitnil,min=5"`
}

type LoginRequest struct {
	PIN string `json:"pin" validate:"required"`
}

type DrawRequest struct {
	PIN string `json:"pin" validate:"required"`
}

type AdminLoginRequest struct {
	AdminPin string `json:"adminPin" validate:"required"`
}

// Action is checked by the handler so an unknown value gets its own message
type ApproveRequest struct {
	PIN    string `json:"pin" validate:"required"`
	Action string `json:"action" validate:"required"`
}

// Response types

type RegisterResponse struct {
	Success bool   `json:"success"`
	PIN     string `json:"pin"`
	Message string `json:"message"`
}

type ParticipantResponse struct {
	Success     bool            `json:"success"`
	Participant ParticipantView `json:"participant"`
}

type DrawResponse struct {
	Success bool          `json:"success"`
	Match   PublicProfile `json:"match"`
}

type AdminLoginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AdminParticipantsResponse struct {
	Success  bool               `json:"success"`
	All      []AdminParticipant `json:"all"`
	Pending  []AdminParticipant `json:"pending"`
	Approved []AdminParticipant `json:"approved"`
}

type ToggleDrawResponse struct {
	Success     bool `json:"success"`
	DrawEnabled bool `json:"drawEnabled"`
}

type SettingsResponse struct {
	Success  bool           `json:"success"`
	Settings PublicSettings `json:"settings"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Domain types

type Participant struct {
	ID            string    `json:"id"`
	PIN           string    `json:"pin"`
	FullName      string    `json:"fullName"`
	Codename      string    `json:"codename"`
	Gender        string    `json:"gender"`
	Wishlist      string    `json:"wishlist"`
	Approved      bool      `json:"approved"`
	HasDrawn      bool      `json:"hasDrawn"`
	AssignedToPin *string   `json:"assignedToPin"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PublicProfile is what a giver learns about their recipient. No PIN.
type PublicProfile struct {
	FullName string `json:"fullName"`
	Codename string `json:"codename"`
	Gender   string `json:"gender"`
	Wishlist string `json:"wishlist"`
}

func (p Participant) Public() PublicProfile {
	return PublicProfile{
		FullName: p.FullName,
		Codename: p.Codename,
		Gender:   p.Gender,
		Wishlist: p.Wishlist,
	}
}

// ParticipantView is the participant's own record as returned to them.
// The recipient PIN is replaced by the recipient's public profile.
type ParticipantView struct {
	PIN      string         `json:"pin"`
	FullName string         `json:"fullName"`
	Codename string         `json:"codename"`
	Gender   string         `json:"gender"`
	Wishlist string         `json:"wishlist"`
	Approved bool           `json:"approved"`
	HasDrawn bool           `json:"hasDrawn"`
	Match    *PublicProfile `json:"match,omitempty"`
}

func (p Participant) View(match *PublicProfile) ParticipantView {
	return ParticipantView{
		PIN:      p.PIN,
		FullName: p.FullName,
		Codename: p.Codename,
		Gender:   p.Gender,
		Wishlist: p.Wishlist,
		Approved: p.Approved,
		HasDrawn: p.HasDrawn,
		Match:    match,
	}
}

type AdminParticipant struct {
	Participant
	RegisteredAgo string `json:"registeredAgo"`
}

type Settings struct {
	ID          string    `json:"id"`
	DrawEnabled bool      `json:"drawEnabled"`
	AdminPin    string    `json:"-"` // Never expose in JSON
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PublicSettings struct {
	DrawEnabled bool `json:"drawEnabled"`
}

// Error response

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
