package dtos

import "github.com/justsurfingit/automate/internal/models"

type ProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Github    string `json:"github"`
	Linkedin  string `json:"linkedin"`
	Devpost   string `json:"devpost"`
	Bio       string `json:"bio"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// ToProfile keeps the GitHub username from the current profile; it is only
// ever set by the OAuth connect flow.
func (r ProfileRequest) ToProfile(current models.Profile) models.Profile {
	return models.Profile{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		Github:         r.Github,
		GithubUsername: current.GithubUsername,
		Linkedin:       r.Linkedin,
		Devpost:        r.Devpost,
		Bio:            r.Bio,
		Street:         r.Street,
		City:           r.City,
		State:          r.State,
		ZipCode:        r.ZipCode,
		Country:        r.Country,
	}
}

type GitHubCallbackResponse struct {
	Login   string         `json:"login"`
	Name    string         `json:"name,omitempty"`
	Profile models.Profile `json:"profile"`
}
