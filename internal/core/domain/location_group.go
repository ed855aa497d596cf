package domain

import (
	"fmt"
	"strings"
)

// LocationGroupCodePrefix prefixes generated location group codes.
const LocationGroupCodePrefix = "LG"

// FormatLocationGroupCode renders the n-th generated code, e.g. LG-0007.
func FormatLocationGroupCode(n int64) string {
	return fmt.Sprintf("%s-%04d", LocationGroupCodePrefix, n)
}

// LocationGroup is a named set of geographic mappings.
type LocationGroup struct {
	ID          int64             `json:"id"`
	CompanyID   int64             `json:"company_id"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsActive    bool              `json:"is_active"`
	Mappings    []LocationMapping `json:"mappings"`
	AuditFields
}

// LocationMapping places a country, optionally narrowed to a state and city, in a group.
type LocationMapping struct {
	ID              int64  `json:"id"`
	LocationGroupID int64  `json:"location_group_id"`
	Country         string `json:"country"`
	State           string `json:"state"`
	City            string `json:"city"`
}

func (m LocationMapping) GetID() int64 { return m.ID }

// Key identifies a mapping by its geography, case-insensitively.
func (m LocationMapping) Key() string {
	return strings.ToLower(strings.TrimSpace(m.Country)) + "|" +
		strings.ToLower(strings.TrimSpace(m.State)) + "|" +
		strings.ToLower(strings.TrimSpace(m.City))
}

// LocationGroupUpdate is a partial update; nil Mappings leaves them untouched.
type LocationGroupUpdate struct {
	Name        *string
	Description *string
	IsActive    *bool
	Mappings    []LocationMapping
}

// Apply copies the scalar fields onto g.
func (u LocationGroupUpdate) Apply(g *LocationGroup) {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.IsActive != nil {
		g.IsActive = *u.IsActive
	}
}
