package pricing

import "github.com/Simplici0/reno.works/internal/catalog"

// RoomInput is one room as captured by the client: geometry plus finish choices.
type RoomInput struct {
	RoomType         string  `json:"roomType"`
	Width            float64 `json:"width"`
	Length           float64 `json:"length"`
	CeilingHeight    string  `json:"ceilingHeight,omitempty"`
	FloorFinish      string  `json:"floorFinish"`
	WallFinish       string  `json:"wallFinish"`
	BuiltInFurniture string  `json:"builtInFurniture"`
	// Reserved: echoed back but not priced.
	ElectricalScope string `json:"electricalScope,omitempty"`
	PlumbingScope   string `json:"plumbingScope,omitempty"`
}

// ProjectInput represents the property attributes and rooms to estimate.
type ProjectInput struct {
	PropertyLocation  string      `json:"propertyLocation"`
	PropertyCity      string      `json:"propertyCity"`
	PropertyAge       string      `json:"propertyAge"`
	PropertyType      string      `json:"propertyType"`
	PropertyCondition string      `json:"propertyCondition"`
	AccessDifficulty  string      `json:"accessDifficulty"`
	Urgency           string      `json:"urgency"`
	Rooms             []RoomInput `json:"rooms"`
}

// RoomDimensions are the measures derived from a room's raw geometry.
type RoomDimensions struct {
	FloorArea     float64 `json:"floorArea"`
	Perimeter     float64 `json:"perimeter"`
	CeilingHeight float64 `json:"ceilingHeight"`
	WallArea      float64 `json:"wallArea"`
	CeilingArea   float64 `json:"ceilingArea"`
}

// LineItem is one priced unit of work.
type LineItem struct {
	CatalogCode     string               `json:"catalogCode"`
	Name            string               `json:"name"`
	Category        catalog.CostCategory `json:"category"`
	Unit            string               `json:"unit"`
	Quantity        float64              `json:"quantity"`
	BaseUnitCost    float64              `json:"baseUnitCost"`
	LocationFactor  float64              `json:"locationFactor"`
	AgeFactor       float64              `json:"ageFactor"`
	UnitCostFinal   float64              `json:"unitCostFinal"`
	CostBeforeWaste float64              `json:"costBeforeWaste"`
	WastePct        float64              `json:"wastePct"`
	WasteAmount     float64              `json:"wasteAmount"`
	CostBeforeTax   float64              `json:"costBeforeTax"`
	TaxRate         float64              `json:"taxRate"`
	TaxAmount       float64              `json:"taxAmount"`
	TotalCost       float64              `json:"totalCost"`
	AssemblyCode    string               `json:"assemblyCode,omitempty"`
	// RoomIndex is nil for project-level items.
	RoomIndex *int `json:"roomIndex,omitempty"`
}

// RoomBreakdown groups a room's line items and its pre-tax roll-ups.
type RoomBreakdown struct {
	RoomIndex     int        `json:"roomIndex"`
	RoomType      string     `json:"roomType"`
	FloorArea     float64    `json:"floorArea"`
	Perimeter     float64    `json:"perimeter"`
	WallArea      float64    `json:"wallArea"`
	CeilingArea   float64    `json:"ceilingArea"`
	CeilingHeight float64    `json:"ceilingHeight"`
	LineItems     []LineItem `json:"lineItems"`
	MaterialsCost float64    `json:"materialsCost"`
	LaborCost     float64    `json:"laborCost"`
	Subtotal      float64    `json:"subtotal"`
}

// EstimateSummary holds the project grand totals.
type EstimateSummary struct {
	MaterialsCost    float64 `json:"materialsCost"`
	LaborCost        float64 `json:"laborCost"`
	EquipmentCost    float64 `json:"equipmentCost"`
	SubcontractCost  float64 `json:"subcontractCost"`
	OtherCost        float64 `json:"otherCost"`
	AdjustedSubtotal float64 `json:"adjustedSubtotal"`
	Overhead         float64 `json:"overhead"`
	Contingency      float64 `json:"contingency"`
	Subtotal         float64 `json:"subtotal"`
	TaxTotal         float64 `json:"taxTotal"`
	Total            float64 `json:"total"`
}

// Assumptions are the fixed constants an estimate was computed with.
type Assumptions struct {
	TaxRate              float64 `json:"taxRate"`
	OverheadRate         float64 `json:"overheadRate"`
	ContingencyRate      float64 `json:"contingencyRate"`
	OpeningsFraction     float64 `json:"openingsFraction"`
	DefaultCeilingHeight float64 `json:"defaultCeilingHeight"`
}

// ResolvedMultiplier is a multiplier value plus the table label it came from.
type ResolvedMultiplier struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// ResolvedMultipliers echoes every multiplier used by an estimate.
type ResolvedMultipliers struct {
	Location          ResolvedMultiplier `json:"location"`
	PropertyAge       ResolvedMultiplier `json:"propertyAge"`
	PropertyType      ResolvedMultiplier `json:"propertyType"`
	PropertyCondition ResolvedMultiplier `json:"propertyCondition"`
	AccessDifficulty  ResolvedMultiplier `json:"accessDifficulty"`
	Urgency           ResolvedMultiplier `json:"urgency"`
	Combined          float64            `json:"combined"`
}

// InputSummary echoes the input for auditability.
type InputSummary struct {
	PropertyLocation  string      `json:"propertyLocation"`
	PropertyCity      string      `json:"propertyCity"`
	PropertyAge       string      `json:"propertyAge"`
	PropertyType      string      `json:"propertyType"`
	PropertyCondition string      `json:"propertyCondition"`
	AccessDifficulty  string      `json:"accessDifficulty"`
	Urgency           string      `json:"urgency"`
	RoomCount         int         `json:"roomCount"`
	TotalFloorArea    float64     `json:"totalFloorArea"`
	Rooms             []RoomInput `json:"rooms"`
}

// Diagnostic codes.
const (
	DiagAssemblyNotFound    = "assembly_not_found"
	DiagCatalogItemNotFound = "catalog_item_not_found"
	DiagFormulaUnknown      = "formula_not_recognized"
)

// Diagnostic reports a table gap that was skipped while pricing. It never
// prevents an estimate from being produced.
type Diagnostic struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RoomIndex    *int   `json:"roomIndex,omitempty"`
	Category     string `json:"category,omitempty"`
	Value        string `json:"value,omitempty"`
	AssemblyCode string `json:"assemblyCode,omitempty"`
	CatalogCode  string `json:"catalogCode,omitempty"`
}

// ItemizedEstimateResult is the full engine output.
type ItemizedEstimateResult struct {
	PricingVersion string              `json:"pricingVersion"`
	Currency       string              `json:"currency"`
	Assumptions    Assumptions         `json:"assumptions"`
	Summary        EstimateSummary     `json:"summary"`
	Rooms          []RoomBreakdown     `json:"rooms"`
	ProjectItems   []LineItem          `json:"projectItems"`
	LineItems      []LineItem          `json:"lineItems"`
	Multipliers    ResolvedMultipliers `json:"multipliers"`
	Input          InputSummary        `json:"input"`
	Diagnostics    []Diagnostic        `json:"diagnostics,omitempty"`
}
