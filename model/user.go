package model

// User is the identity record owned by the TaskWhiz API. The frontend only
// ever reads it: it is created by registration and fetched on login.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Profile is the subset of User rendered on the profile page.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}
