package rentalrequestsbystatus

import "github.com/AntonStoeckl/gear-rental-go/rental"

// Project builds the listing from the filtered requests and the per-status counts.
//
// Query Logic:
//
//	GIVEN: Rental requests matching the filter, newest first
//	WHEN: RentalRequestsByStatus query is executed
//	THEN: Requests keep their order, counts cover every status regardless of the status filter
func Project(requests []rental.RentalRequest, counts map[rental.RequestStatus]int) RentalRequests {
	result := RentalRequests{
		Requests: make([]RentalRequestInfo, 0, len(requests)),
		Counts: StatusCounts{
			Pending:  counts[rental.RequestStatusPending],
			Approved: counts[rental.RequestStatusApproved],
			Rejected: counts[rental.RequestStatusRejected],
		},
	}

	for _, r := range requests {
		result.Requests = append(result.Requests, RentalRequestInfo{
			RequestID:      r.ID,
			ItemID:         r.ItemID,
			PatronID:       r.PatronID,
			Quantity:       r.Quantity,
			Status:         string(r.Status),
			CreatedAt:      r.CreatedAt,
			DecidedAt:      r.ApprovedDate,
			RentStartDate:  r.RentStartDate,
			RentReturnDate: r.RentReturnDate,
		})
	}

	return result
}
