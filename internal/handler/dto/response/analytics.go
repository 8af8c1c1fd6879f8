package response

import (
	"foodshare/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type OverviewResponse struct {
	TotalDonations    int64   `json:"totalDonations"`
	TotalWasteReduced float64 `json:"totalWasteReduced"`
	TotalPeopleServed int64   `json:"totalPeopleServed"`
	ActiveDonors      int64   `json:"activeDonors"`
	ActiveRecipients  int64   `json:"activeRecipients"`
	AvailableListings int64   `json:"availableListings"`
}

func FromOverviewRM(rm *readmodel.OverviewRM) *OverviewResponse {
	return &OverviewResponse{
		TotalDonations:    rm.TotalDonations,
		TotalWasteReduced: rm.TotalWasteReduced,
		TotalPeopleServed: rm.TotalPeopleServed,
		ActiveDonors:      rm.ActiveDonors,
		ActiveRecipients:  rm.ActiveRecipients,
		AvailableListings: rm.AvailableListings,
	}
}

type TrendPointResponse struct {
	Year         int     `json:"year"`
	Month        int     `json:"month,omitempty"`
	Week         int     `json:"week,omitempty"`
	Day          int     `json:"day,omitempty"`
	Count        int64   `json:"count"`
	WasteReduced float64 `json:"wasteReduced"`
	PeopleServed int64   `json:"peopleServed"`
}

func FromTrendPointRM(rm *readmodel.TrendPointRM) *TrendPointResponse {
	return &TrendPointResponse{
		Year:         rm.Year,
		Month:        rm.Month,
		Week:         rm.Week,
		Day:          rm.Day,
		Count:        rm.Count,
		WasteReduced: rm.WasteReduced,
		PeopleServed: rm.PeopleServed,
	}
}

func FromTrendPointRMs(rms []*readmodel.TrendPointRM) []*TrendPointResponse {
	points := make([]*TrendPointResponse, 0, len(rms))
	for _, rm := range rms {
		points = append(points, FromTrendPointRM(rm))
	}
	return points
}

type CategoryBreakdownResponse struct {
	Category     string  `json:"category"`
	Count        int64   `json:"count"`
	WasteReduced float64 `json:"wasteReduced"`
	PeopleServed int64   `json:"peopleServed"`
}

func FromCategoryBreakdownRMs(rms []*readmodel.CategoryBreakdownRM) []*CategoryBreakdownResponse {
	breakdown := make([]*CategoryBreakdownResponse, 0, len(rms))
	for _, rm := range rms {
		breakdown = append(breakdown, &CategoryBreakdownResponse{
			Category:     rm.Category,
			Count:        rm.Count,
			WasteReduced: rm.WasteReduced,
			PeopleServed: rm.PeopleServed,
		})
	}
	return breakdown
}

type TopDonorResponse struct {
	DonorID          uuid.UUID `json:"donorId"`
	Name             string    `json:"name"`
	OrganizationName string    `json:"organizationName"`
	DonationCount    int64     `json:"donationCount"`
	WasteReduced     float64   `json:"wasteReduced"`
	PeopleServed     int64     `json:"peopleServed"`
}

func FromTopDonorRMs(rms []*readmodel.TopDonorRM) []*TopDonorResponse {
	donors := make([]*TopDonorResponse, 0, len(rms))
	for _, rm := range rms {
		donors = append(donors, &TopDonorResponse{
			DonorID:          rm.DonorID,
			Name:             rm.DonorName,
			OrganizationName: rm.OrganizationName,
			DonationCount:    rm.DonationCount,
			WasteReduced:     rm.WasteReduced,
			PeopleServed:     rm.PeopleServed,
		})
	}
	return donors
}

type TopRecipientResponse struct {
	RecipientID       uuid.UUID `json:"recipientId"`
	Name              string    `json:"name"`
	OrganizationName  string    `json:"organizationName"`
	DonationsReceived int64     `json:"donationsReceived"`
	WasteReduced      float64   `json:"wasteReduced"`
	PeopleServed      int64     `json:"peopleServed"`
}

func FromTopRecipientRMs(rms []*readmodel.TopRecipientRM) []*TopRecipientResponse {
	recipients := make([]*TopRecipientResponse, 0, len(rms))
	for _, rm := range rms {
		recipients = append(recipients, &TopRecipientResponse{
			RecipientID:       rm.RecipientID,
			Name:              rm.RecipientName,
			OrganizationName:  rm.OrganizationName,
			DonationsReceived: rm.DonationsReceived,
			WasteReduced:      rm.WasteReduced,
			PeopleServed:      rm.PeopleServed,
		})
	}
	return recipients
}

type ImpactSummaryResponse struct {
	TotalDonations       int64   `json:"totalDonations"`
	TotalWasteReduced    float64 `json:"totalWasteReduced"`
	TotalPeopleServed    int64   `json:"totalPeopleServed"`
	AvgWastePerDonation  float64 `json:"avgWastePerDonation"`
	AvgPeoplePerDonation float64 `json:"avgPeoplePerDonation"`
}

type ImpactReportResponse struct {
	Summary       ImpactSummaryResponse `json:"summary"`
	MonthlyTrends []*TrendPointResponse `json:"monthlyTrends"`
}

func FromImpactReportRM(rm *readmodel.ImpactReportRM) *ImpactReportResponse {
	trends := make([]*TrendPointResponse, 0, len(rm.MonthlyTrends))
	for i := range rm.MonthlyTrends {
		trends = append(trends, FromTrendPointRM(&rm.MonthlyTrends[i]))
	}
	return &ImpactReportResponse{
		Summary: ImpactSummaryResponse{
			TotalDonations:       rm.Summary.TotalDonations,
			TotalWasteReduced:    rm.Summary.TotalWasteReduced,
			TotalPeopleServed:    rm.Summary.TotalPeopleServed,
			AvgWastePerDonation:  rm.Summary.AvgWastePerDonation,
			AvgPeoplePerDonation: rm.Summary.AvgPeoplePerDonation,
		},
		MonthlyTrends: trends,
	}
}
