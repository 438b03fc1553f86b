// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: fullName, codename, gender, wishlist
  - UpdateProfileRequest: codename, wishlist (both optional)
  - LoginRequest, DrawRequest: pin
  - AdminLoginRequest: adminPin
  - ApproveRequest: pin, action ("approve" or "reject")

Validation rules live in `validate` struct tags and are applied by the handlers.

# Response Types

Every response carries a success flag:

  - RegisterResponse: pin, message
  - ParticipantResponse: participant (ParticipantView)
  - DrawResponse: match (PublicProfile)
  - AdminLoginResponse: token, expiresAt
  - AdminParticipantsResponse: all, pending, approved
  - ToggleDrawResponse: drawEnabled
  - SettingsResponse: settings.drawEnabled
  - ErrorResponse: error, message, fields

# Domain Types

  - Participant: the stored record, including assignedToPin
  - PublicProfile: what a giver may see of their recipient (no PIN)
  - ParticipantView: a participant's own record with the recipient PIN replaced by a PublicProfile
  - AdminParticipant: Participant plus a humanized registration age
  - Settings: the singleton row (adminPin is never serialized)

# Constants

Genders:

	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"

Settings row key:

	SettingsID = "singleton"
*/
package models
