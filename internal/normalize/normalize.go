// Package normalize turns raw upstream job records into canonical model.Job
// values. All knowledge of upstream key names lives here.
package normalize

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/amishk599/jobboard/internal/model"
)

// Placeholders used when the source omits a required field.
const (
	UntitledPosition   = "Untitled Position"
	UnknownCompanyName = "Company Name"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Normalize converts one raw record into a canonical Job. It never fails:
// missing or mistyped fields degrade to the zero value or a placeholder.
func Normalize(raw model.RawJob) model.Job {
	title := getString(raw, fieldKeys.Title...)
	if title == "" {
		title = UntitledPosition
	}
	company := getString(raw, fieldKeys.Company...)
	if company == "" {
		company = UnknownCompanyName
	}

	location, firstLocation := resolveLocation(raw)
	posted := getString(raw, fieldKeys.Posted...)

	return model.Job{
		ID:           StableID(title, company, firstLocation, posted),
		Title:        title,
		Company:      company,
		Location:     location,
		CompanyLogo:  getString(raw, fieldKeys.CompanyLogo...),
		Salary:       resolveSalary(raw),
		Description:  getString(raw, fieldKeys.Description...),
		Type:         getString(raw, fieldKeys.Type...),
		Posted:       posted,
		URL:          getString(raw, fieldKeys.URL...),
		Requirements: getList(raw, fieldKeys.Requirements...),
		Benefits:     getList(raw, fieldKeys.Benefits...),
	}
}

// NormalizeAll normalizes every record in order.
func NormalizeAll(raws []model.RawJob) []model.Job {
	jobs := make([]model.Job, 0, len(raws))
	for _, raw := range raws {
		jobs = append(jobs, Normalize(raw))
	}
	return jobs
}

// resolveLocation returns the display location and the first location used
// for ID derivation. A location list wins over the singular keys.
func resolveLocation(raw model.RawJob) (display, first string) {
	if locs := getList(raw, fieldKeys.Locations...); len(locs) > 0 {
		if len(locs) == 1 {
			return locs[0], locs[0]
		}
		return strings.Join(locs, ", "), locs[0]
	}
	loc := getString(raw, fieldKeys.Location...)
	return loc, loc
}

// resolveSalary synthesizes a salary string from min/max/currency when
// possible, otherwise falls back to a pre-formatted salary field.
func resolveSalary(raw model.RawJob) string {
	minSalary, hasMin := getNumber(raw, fieldKeys.MinSalary...)
	maxSalary, hasMax := getNumber(raw, fieldKeys.MaxSalary...)
	currency := strings.ToUpper(getString(raw, fieldKeys.Currency...))

	switch {
	case hasMin && hasMax && currency != "":
		return formatAmount(minSalary, currency) + " - " + formatAmount(maxSalary, currency)
	case hasMin && !hasMax:
		return formatAmount(minSalary, currency) + "+"
	}
	return getString(raw, fieldKeys.Salary...)
}

// formatAmount renders "$80k" for known symbols, otherwise the currency code
// followed by the thousands-grouped amount ("PHP 80,000").
func formatAmount(amount float64, currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		return sym + strconv.FormatFloat(amount/1000, 'f', -1, 64) + "k"
	}
	grouped := humanize.Commaf(amount)
	if currency == "" {
		return grouped
	}
	return currency + " " + grouped
}
