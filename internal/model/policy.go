package model

import "time"

// Policy is read-only to this service; rows are created and maintained by an
// external underwriting process.
type Policy struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	PolicyName        string    `json:"policy_name"`
	Status            string    `json:"status"`
	OutstandingAmount string    `json:"outstanding_amount"`
	TermMonths        int       `json:"term_months"`
	PaymentDueDate    time.Time `json:"payment_due_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
