package dto

type InterviewResourcesResponse struct {
	CompanyName string   `json:"companyName"`
	JobTitle    string   `json:"jobTitle"`
	Resources   []string `json:"resources"`
}
