package api

import "github.com/studentcollab/collabhub/shared/domain"

// Request DTOs

type UpdateProfileRequest struct {
	Name   string   `json:"name"`
	Bio    string   `json:"bio"`
	Skills []string `json:"skills"`
}

// Response DTOs

type UserResponse struct {
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

func (u UserResponse) ToDomain() domain.Profile {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return domain.Profile{Username: u.Username, Name: u.Name, Bio: u.Bio, Skills: skills}
}
