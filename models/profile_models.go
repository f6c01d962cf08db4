package models

// ProfileRequest is the body for creating or updating a profile.
type ProfileRequest struct {
	Username string `json:"username"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// PrivacySettingsRequest is the body for updating privacy settings.
type PrivacySettingsRequest struct {
	ProfileVisibility string `json:"profile_visibility"`
	ShowSocialGraph   bool   `json:"show_social_graph"`
}

// UsernameAvailabilityResponse answers a username availability check.
type UsernameAvailabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}
