package domain

// MasterKind names one of the company-scoped master-data resources.
type MasterKind string

const (
	KindBranch       MasterKind = "branch"
	KindDivision     MasterKind = "division"
	KindRegion       MasterKind = "region"
	KindZone         MasterKind = "zone"
	KindCostCenter   MasterKind = "cost-center"
	KindGrade        MasterKind = "grade"
	KindBusinessUnit MasterKind = "business-unit"
	KindChannel      MasterKind = "channel"
	KindLocation     MasterKind = "location"
)

// MasterKindDef describes how a kind is labelled and what it may point at.
type MasterKindDef struct {
	Kind       MasterKind
	Label      string     // human name used in messages
	RoutePath  string     // URL segment, plural
	ParentKind MasterKind // empty when the kind has no parent
	HasLevel   bool       // grades carry a numeric level
}

var masterKindDefs = []MasterKindDef{
	{Kind: KindBranch, Label: "Branch", RoutePath: "branches"},
	{Kind: KindDivision, Label: "Division", RoutePath: "divisions"},
	{Kind: KindRegion, Label: "Region", RoutePath: "regions"},
	{Kind: KindZone, Label: "Zone", RoutePath: "zones", ParentKind: KindRegion},
	{Kind: KindCostCenter, Label: "Cost center", RoutePath: "cost-centers"},
	{Kind: KindGrade, Label: "Grade", RoutePath: "grades", HasLevel: true},
	{Kind: KindBusinessUnit, Label: "Business unit", RoutePath: "business-units"},
	{Kind: KindChannel, Label: "Channel", RoutePath: "channels"},
	{Kind: KindLocation, Label: "Location", RoutePath: "locations", ParentKind: KindZone},
}

// MasterKindDefs returns every registered kind in a stable order.
func MasterKindDefs() []MasterKindDef {
	out := make([]MasterKindDef, len(masterKindDefs))
	copy(out, masterKindDefs)
	return out
}

// LookupMasterKind returns the definition for k.
func LookupMasterKind(k MasterKind) (MasterKindDef, bool) {
	for _, def := range masterKindDefs {
		if def.Kind == k {
			return def, true
		}
	}
	return MasterKindDef{}, false
}

// ChildKinds returns the kinds whose parent is k.
func ChildKinds(k MasterKind) []MasterKind {
	var out []MasterKind
	for _, def := range masterKindDefs {
		if def.ParentKind == k {
			out = append(out, def.Kind)
		}
	}
	return out
}

// MasterRecord is one row of a master-data kind.
type MasterRecord struct {
	ID          int64      `json:"id"`
	CompanyID   int64      `json:"company_id"`
	Kind        MasterKind `json:"kind"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ParentID    *int64     `json:"parent_id,omitempty"`
	Level       *int       `json:"level,omitempty"`
	IsActive    bool       `json:"is_active"`
	AuditFields
}

// MasterRecordUpdate is a partial update of a master record.
type MasterRecordUpdate struct {
	Code        *string
	Name        *string
	Description *string
	ParentID    *int64
	Level       *int
	IsActive    *bool
}

// Apply copies provided fields onto r.
func (u MasterRecordUpdate) Apply(r *MasterRecord) {
	if u.Code != nil {
		r.Code = *u.Code
	}
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.ParentID != nil {
		r.ParentID = u.ParentID
	}
	if u.Level != nil {
		r.Level = u.Level
	}
	if u.IsActive != nil {
		r.IsActive = *u.IsActive
	}
}

// MasterRecordFilter narrows master record lists.
type MasterRecordFilter struct {
	ListFilter
	ParentID *int64
}
