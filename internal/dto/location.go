package dto

import (
	"time"

	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

// CreateLocationRequest defines the data needed to create a new location.
type CreateLocationRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parentId"` // Optional, use pointer for nullability
}

// UpdateLocationRequest defines the data allowed for updating a location.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateLocationRequest struct {
	Name *string `json:"name"`
	// ParentID updates the parent; ClearParent detaches the location instead.
	ParentID    *string `json:"parentId"`
	ClearParent bool    `json:"clearParent"`
}

// LocationRefResponse is the compact location shape embedded in other responses.
type LocationRefResponse struct {
	LocationID string `json:"locationID"`
	Name       string `json:"name"`
}

// ToLocationRefResponse converts a domain.LocationRef to DTO.
func ToLocationRefResponse(ref *domain.LocationRef) *LocationRefResponse {
	if ref == nil {
		return nil
	}
	return &LocationRefResponse{
		LocationID: ref.LocationID,
		Name:       ref.Name,
	}
}

// LocationResponse defines the data returned for a location.
type LocationResponse struct {
	LocationID    string                `json:"locationID"`
	Name          string                `json:"name"`
	ParentID      *string               `json:"parentId,omitempty"`
	Parent        *LocationRefResponse  `json:"parent,omitempty"`
	Children      []LocationRefResponse `json:"children,omitempty"`
	IsTrashed     bool                  `json:"isTrashed"`
	IsProtected   bool                  `json:"isProtected"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
}

// ToLocationResponse converts a domain.Location to LocationResponse DTO
func ToLocationResponse(loc *domain.Location) LocationResponse {
	var children []LocationRefResponse
	if len(loc.Children) > 0 {
		children = make([]LocationRefResponse, len(loc.Children))
		for i, c := range loc.Children {
			children[i] = LocationRefResponse{LocationID: c.LocationID, Name: c.Name}
		}
	}
	return LocationResponse{
		LocationID:    loc.LocationID,
		Name:          loc.Name,
		ParentID:      loc.ParentID,
		Parent:        ToLocationRefResponse(loc.Parent),
		Children:      children,
		IsTrashed:     loc.IsTrashed,
		IsProtected:   loc.IsProtected,
		CreatedAt:     loc.CreatedAt,
		CreatedBy:     loc.CreatedBy,
		LastUpdatedAt: loc.LastUpdatedAt,
		LastUpdatedBy: loc.LastUpdatedBy,
	}
}

// ListLocationsParams defines query parameters for listing locations.
// Sort is validated against the whitelisted sortable columns.
type ListLocationsParams struct {
	Page  int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Query string `form:"query"`
	Sort  string `form:"sort,default=name" binding:"omitempty,sortfield"`
	Dir   string `form:"dir,default=asc" binding:"omitempty,oneof=asc desc"`
}

// Offset derives the row offset from the 1-based page number.
func (p ListLocationsParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit
}

// ListLocationsResponse wraps a page of locations with its count metadata.
type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

// ToListLocationsResponse converts a slice of domain.Location plus paging info to DTO.
func ToListLocationsResponse(locs []domain.Location, total, page, limit int) ListLocationsResponse {
	list := make([]LocationResponse, len(locs))
	for i, l := range locs {
		list[i] = ToLocationResponse(&l)
	}
	return ListLocationsResponse{
		Locations: list,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}
}
