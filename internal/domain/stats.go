package domain

type Stats struct {
	Events           int64   `json:"events"`
	TicketsIssued    int64   `json:"tickets_issued"`
	TicketsScanned   int64   `json:"tickets_scanned"`
	TicketsCancelled int64   `json:"tickets_cancelled"`
	GrossRevenue     float64 `json:"gross_revenue"`
}
