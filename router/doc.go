// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Manito/Manita gift exchange API.

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Participants (public, identified by PIN):

	POST  /api/register         - Register, returns the PIN
	POST  /api/login            - Log in with a PIN
	GET   /api/participant/{pin} - Fetch own record
	PATCH /api/participant/{pin} - Update codename or wishlist
	POST  /api/draw             - Draw a recipient

Admin (X-Admin-Pin header or Bearer token, except login and settings):

	POST /api/admin/login        - Exchange the admin PIN for a token
	GET  /api/admin/participants - Roster split into pending and approved
	POST /api/admin/approve      - Approve or reject a participant
	POST /api/admin/toggle-draw  - Flip the draw switch
	POST /api/admin/reset-draws  - Clear every assignment
	GET  /api/admin/settings     - Public draw status
*/
package router
