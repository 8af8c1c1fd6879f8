package readmodel

import "github.com/google/uuid"

type OverviewRM struct {
	TotalDonations    int64   `json:"totalDonations"`
	TotalWasteReduced float64 `json:"totalWasteReduced"`
	TotalPeopleServed int64   `json:"totalPeopleServed"`
	ActiveDonors      int64   `json:"activeDonors"`
	ActiveRecipients  int64   `json:"activeRecipients"`
	AvailableListings int64   `json:"availableListings"`
}

// TrendPointRM is one time bucket of completed donations. Week and Day are
// zero for coarser periods.
type TrendPointRM struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	Week         int     `json:"week,omitempty"`
	Day          int     `json:"day,omitempty"`
	Count        int64   `json:"count"`
	WasteReduced float64 `json:"wasteReduced"`
	PeopleServed int64   `json:"peopleServed"`
}

type CategoryBreakdownRM struct {
	Category     string  `json:"category"`
	Count        int64   `json:"count"`
	WasteReduced float64 `json:"wasteReduced"`
	PeopleServed int64   `json:"peopleServed"`
}

type TopDonorRM struct {
	DonorID          uuid.UUID `json:"donorId"`
	DonorName        string    `json:"donorName"`
	OrganizationName string    `json:"organizationName"`
	DonationCount    int64     `json:"donationCount"`
	WasteReduced     float64   `json:"wasteReduced"`
	PeopleServed     int64     `json:"peopleServed"`
}

type TopRecipientRM struct {
	RecipientID       uuid.UUID `json:"recipientId"`
	RecipientName     string    `json:"recipientName"`
	OrganizationName  string    `json:"organizationName"`
	DonationsReceived int64     `json:"donationsReceived"`
	WasteReduced      float64   `json:"wasteReduced"`
	PeopleServed      int64     `json:"peopleServed"`
}

type ImpactSummaryRM struct {
	TotalDonations       int64   `json:"totalDonations"`
	TotalWasteReduced    float64 `json:"totalWasteReduced"`
	TotalPeopleServed    int64   `json:"totalPeopleServed"`
	AvgWastePerDonation  float64 `json:"avgWastePerDonation"`
	AvgPeoplePerDonation float64 `json:"avgPeoplePerDonation"`
}

type ImpactReportRM struct {
	Summary       ImpactSummaryRM `json:"summary"`
	MonthlyTrends []TrendPointRM  `json:"monthlyTrends"`
}
