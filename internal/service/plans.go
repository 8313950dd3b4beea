package service

import "sharescribe/internal/model"

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Plans holds the limits of both tiers. MaxDocuments of 0 means unlimited.
type Plans struct {
	FreeMaxDocuments int
	FreeStorageBytes int64
	ProStorageBytes  int64
}

// For returns the limits that apply to acc. A nil account is on the free plan.
func (p Plans) For(acc *model.Account) model.PlanLimits {
	if acc != nil && acc.IsPro {
		return model.PlanLimits{Plan: PlanPro, StorageBytes: p.ProStorageBytes}
	}
	return model.PlanLimits{Plan: PlanFree, MaxDocuments: p.FreeMaxDocuments, StorageBytes: p.FreeStorageBytes}
}

// Allows reports whether one more document of size bytes fits.
func (p Plans) Allows(acc *model.Account, documents int, size int64) bool {
	limits := p.For(acc)
	if limits.MaxDocuments > 0 && documents >= limits.MaxDocuments {
		return false
	}
	var used int64
	if acc != nil {
		used = acc.StorageUsed
	}
	return limits.StorageBytes <= 0 || used+size <= limits.StorageBytes
}
