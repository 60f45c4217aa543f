package model

import "time"

// Claim status lifecycle. This service inserts rows as Pending and reports
// Created back to the caller; Approved/Rejected are set by the external
// adjudication process.
const (
	ClaimStatusPending  = "Pending"
	ClaimStatusCreated  = "Created"
	ClaimStatusApproved = "Approved"
	ClaimStatusRejected = "Rejected"
)

type Claim struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	PolicyID          int64     `json:"policy_id"`
	Status            string    `json:"status"`
	Vehicle           string    `json:"vehicle"`
	DamageDescription string    `json:"damage"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ClaimStatus struct {
	ClaimID   int64     `json:"claim_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}
