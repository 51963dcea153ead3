package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/amishk599/jobboard/internal/model"
)

// fieldKeys is the resolution table: for each canonical field, the upstream
// keys tried in order. The first key holding a usable value wins. New
// upstream synonyms are added here and nowhere else.
var fieldKeys = struct {
	Title        []string
	Company      []string
	Locations    []string
	Location     []string
	CompanyLogo  []string
	Salary       []string
	MinSalary    []string
	MaxSalary    []string
	Currency     []string
	Description  []string
	Type         []string
	Posted       []string
	Requirements []string
	Benefits     []string
	URL          []string
}{
	Title:        []string{"title", "job_title", "jobTitle"},
	Company:      []string{"companyName", "company", "company_name"},
	Locations:    []string{"locations"},
	Location:     []string{"location", "city", "address", "job_location"},
	CompanyLogo:  []string{"companyLogo", "logo", "company_logo"},
	Salary:       []string{"salary", "salary_range", "compensation"},
	MinSalary:    []string{"minSalary", "salary_min"},
	MaxSalary:    []string{"maxSalary", "salary_max"},
	Currency:     []string{"currency", "salary_currency"},
	Description:  []string{"description", "job_description", "details"},
	Type:         []string{"jobType", "type", "workModel", "job_type", "employment_type", "position_type"},
	Posted:       []string{"pubDate", "date_posted", "posted", "created_at", "post_date"},
	Requirements: []string{"requirements", "qualifications", "required_skills"},
	Benefits:     []string{"benefits", "perks", "advantages"},
	URL:          []string{"url", "applyUrl", "applicationLink", "link", "job_url"},
}

// getString returns the first non-empty scalar found under keys, rendered as
// a trimmed string. Objects, arrays, bools and nulls are skipped.
func getString(raw model.RawJob, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return formatNumber(v)
			}
		case json.Number:
			return v.String()
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}

// getNumber returns the first positive finite number found under keys.
// Numeric strings ("80000", "80,000") are accepted.
func getNumber(raw model.RawJob, keys ...string) (float64, bool) {
	for _, key := range keys {
		var f float64
		switch v := raw[key].(type) {
		case float64:
			f = v
		case int:
			f = float64(v)
		case int64:
			f = float64(v)
		case json.Number:
			n, err := v.Float64()
			if err != nil {
				continue
			}
			f = n
		case string:
			n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64)
			if err != nil {
				continue
			}
			f = n
		default:
			continue
		}
		if f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f, true
		}
	}
	return 0, false
}

// getList returns the first non-empty list found under keys. Arrays keep
// their non-empty string items (objects contribute their name or city); a
// plain string is split on newlines.
func getList(raw model.RawJob, keys ...string) []string {
	for _, key := range keys {
		var items []string
		switch v := raw[key].(type) {
		case []any:
			for _, item := range v {
				if s := listItem(item); s != "" {
					items = append(items, s)
				}
			}
		case []string:
			for _, item := range v {
				if s := strings.TrimSpace(item); s != "" {
					items = append(items, s)
				}
			}
		case string:
			for _, line := range strings.Split(v, "\n") {
				if s := strings.TrimSpace(line); s != "" {
					items = append(items, s)
				}
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

func listItem(item any) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return getString(v, "name", "city", "label")
	}
	return ""
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
