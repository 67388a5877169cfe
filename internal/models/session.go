package models

import "encoding/json"

// Session is the blob kept in the session slot after a successful signin.
type Session struct {
	Token string `json:"token,omitempty"`
	User  User   `json:"user"`
}

// UnmarshalJSON accepts both {"token": ..., "user": {...}} and payloads
// that carry the user fields at the top level.
func (s *Session) UnmarshalJSON(data []byte) error {
	type plain Session
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.User.Email == "" && p.User.ID == "" {
		var u User
		if err := json.Unmarshal(data, &u); err == nil {
			p.User = u
		}
	}
	*s = Session(p)
	return nil
}
