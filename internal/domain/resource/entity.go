package resource

import "time"

// Record is one cached set of interview-preparation links for a company and
// job title pair.
type Record struct {
	CompanyName string    `json:"companyName"`
	JobTitle    string    `json:"jobTitle"`
	Resources   []string  `json:"resources"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// FreshAt reports whether the record can still be served at now.
func (r *Record) FreshAt(now time.Time, window time.Duration) bool {
	if r == nil || r.LastUpdated.IsZero() {
		return false
	}
	return now.Sub(r.LastUpdated) < window
}
