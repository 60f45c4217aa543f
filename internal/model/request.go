package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SubmitClaimRequest struct {
	PolicyNumber int64  `json:"policy_number"`
	Vehicle      string `json:"vehicle"`
	Damage       string `json:"damage"`
}

type ClaimStatusRequest struct {
	ClaimID int64 `json:"claim_id"`
}

type ChatRequest struct {
	Message string `json:"message"`
}
