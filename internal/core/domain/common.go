package domain

import "time"

// AuditFields carries the creation and modification stamps shared by all
// persisted entities. CreatedBy and LastUpdatedBy reference user IDs.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
