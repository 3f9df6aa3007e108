package response

import (
	"github.com/google/uuid"

	"tablebook/internal/usecase/queries"
)

type SlotResponse struct {
	Time      string      `json:"time"`
	Available bool        `json:"available"`
	TableIDs  []uuid.UUID `json:"table_ids,omitempty"`
}

type AvailabilityResponse struct {
	Date             string         `json:"date"`
	PartySize        int            `json:"party_size"`
	OpeningTime      string         `json:"opening_time"`
	ClosingTime      string         `json:"closing_time"`
	HasFittingTables bool           `json:"has_fitting_tables"`
	Slots            []SlotResponse `json:"slots"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	slots := make([]SlotResponse, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
			TableIDs:  s.TableIDs,
		}
	}
	return &AvailabilityResponse{
		Date:             v.Date.String(),
		PartySize:        v.PartySize,
		OpeningTime:      v.OperatingWindow.OpeningTime.String(),
		ClosingTime:      v.OperatingWindow.ClosingTime.String(),
		HasFittingTables: v.HasFittingTables,
		Slots:            slots,
	}
}
