package session

import (
	"encoding/json"
	"strings"
)

// Profile is the display-ready slice of the stored user payload.
type Profile struct {
	FirstName string
	LastName  string
	AvatarURL string
}

// FullName joins the name parts, defaulting to "User" when both are empty.
func (p Profile) FullName() string {
	full := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if full == "" {
		return "User"
	}
	return full
}

type rawMedia struct {
	MediaFor string `json:"media_for"`
	URL      string `json:"url"`
	MediaURL string `json:"media_url"`
	Path     string `json:"path"`
}

func (m rawMedia) avatar() string {
	if m.MediaFor != "profile_image" {
		return ""
	}
	if m.URL != "" {
		return m.URL
	}
	if m.MediaURL != "" {
		return m.MediaURL
	}
	return m.Path
}

type rawUser struct {
	FirstName      string          `json:"first_name"`
	FirstNameCamel string          `json:"firstName"`
	LastName       string          `json:"last_name"`
	LastNameCamel  string          `json:"lastName"`
	Medias         json.RawMessage `json:"medias"`
}

func (u rawUser) first() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.FirstNameCamel
}

func (u rawUser) last() string {
	if u.LastName != "" {
		return u.LastName
	}
	return u.LastNameCamel
}

// UserProfile digs the display name and avatar out of the stored user JSON.
// The payload nests the user under "user", "data.user", or "data", and medias
// can be an array or a single object; all spellings seen in the wild are
// tolerated.
func UserProfile(raw json.RawMessage) Profile {
	if len(raw) == 0 {
		return Profile{}
	}

	var outer struct {
		User json.RawMessage `json:"user"`
		Data struct {
			User json.RawMessage `json:"user"`
		} `json:"data"`
	}
	// Two passes: "data" as {user} and "data" as the user itself.
	_ = json.Unmarshal(raw, &outer)
	var dataOnly struct {
		Data json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(raw, &dataOnly)

	candidates := [][]byte{outer.User, outer.Data.User, dataOnly.Data, raw}
	for _, candidate := range candidates {
		if len(candidate) == 0 {
			continue
		}
		var u rawUser
		if err := json.Unmarshal(candidate, &u); err != nil {
			continue
		}
		if u.first() == "" && u.last() == "" && len(u.Medias) == 0 {
			continue
		}
		return Profile{
			FirstName: u.first(),
			LastName:  u.last(),
			AvatarURL: avatarFromMedias(u.Medias),
		}
	}
	return Profile{}
}

func avatarFromMedias(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var many []rawMedia
	if err := json.Unmarshal(raw, &many); err == nil {
		for _, m := range many {
			if url := m.avatar(); url != "" {
				return url
			}
		}
		return ""
	}
	var one rawMedia
	if err := json.Unmarshal(raw, &one); err == nil {
		return one.avatar()
	}
	return ""
}
