package domain

type CtxKey string

const (
	KeyFreelancerID CtxKey = "FreelancerID"
	KeyEmail        CtxKey = "Email"
)
