package appwrite

import (
	"net/url"
	"strconv"
)

// AvatarsService builds avatar image URLs. No method performs a network call.
type AvatarsService struct {
	client *Client
}

// GetInitials returns the URL of an image with the initials of name.
// Zero width or height selects the service default (100).
func (s *AvatarsService) GetInitials(name string, width, height int) string {
	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}
	if width > 0 {
		query.Set("width", strconv.Itoa(width))
	}
	if height > 0 {
		query.Set("height", strconv.Itoa(height))
	}
	return s.client.publicURL("/avatars/initials", query)
}

// InitialsURL implements domain.AvatarRepository
func (s *AvatarsService) InitialsURL(name string) string {
	return s.GetInitials(name, 0, 0)
}
