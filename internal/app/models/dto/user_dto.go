package dto

// ProfileResponse is the authenticated user's own profile. Skills come from
// the user's most recent hackathon registration.
type ProfileResponse struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Skills   []string `json:"skills"`
}

// UserTeamResponse is a team the user belongs to, as listed on their profile
type UserTeamResponse struct {
	TeamID      int64  `json:"team_id"`
	HackathonID int64  `json:"hackathon_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	JoinCode    string `json:"join_code"`
}
