package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string

	// StateClass buckets a workflow state for flow accounting.
	StateClass string

	// FlowRating is the qualitative band for a flow efficiency percentage.
	FlowRating string

	// VelocityTrend describes the direction of sprint velocity over time.
	VelocityTrend string
)

// Well-known work item field reference names.
const (
	FieldWorkItemType     = "System.WorkItemType"
	FieldTitle            = "System.Title"
	FieldState            = "System.State"
	FieldAssignedTo       = "System.AssignedTo"
	FieldCreatedDate      = "System.CreatedDate"
	FieldChangedDate      = "System.ChangedDate"
	FieldClosedDate       = "Microsoft.VSTS.Common.ClosedDate"
	FieldIterationPath    = "System.IterationPath"
	FieldAreaPath         = "System.AreaPath"
	FieldReason           = "System.Reason"
	FieldOriginalEstimate = "Microsoft.VSTS.Scheduling.OriginalEstimate"
	FieldRemainingWork    = "Microsoft.VSTS.Scheduling.RemainingWork"
	FieldCompletedWork    = "Microsoft.VSTS.Scheduling.CompletedWork"
	FieldPriority         = "Microsoft.VSTS.Common.Priority"
)

// Sentinel display names produced by assignee normalization.
const (
	UnassignedName = "Unassigned"
	UnknownName    = "Unknown"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// State classes used by the flow and WIP metrics.
const (
	ActiveClass StateClass = "active"
	WaitClass   StateClass = "wait"
	OtherClass  StateClass = "other"
)

// Flow efficiency rating bands. Bounds are inclusive at the bottom, so an
// efficiency of exactly 40% rates Excellent.
const (
	ExcellentRating FlowRating = "Excellent" // >= 40%
	GoodRating      FlowRating = "Good"      // >= 25%
	FairRating      FlowRating = "Fair"      // >= 15%
	PoorRating      FlowRating = "Poor"
)

// Velocity trend values.
const (
	IncreasingTrend VelocityTrend = "increasing"
	DecreasingTrend VelocityTrend = "decreasing"
	StableTrend     VelocityTrend = "stable"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// RateFlowEfficiency maps an efficiency percentage to its rating band.
func RateFlowEfficiency(pct float64) FlowRating {
	switch {
	case pct >= 40:
		return ExcellentRating
	case pct >= 25:
		return GoodRating
	case pct >= 15:
		return FairRating
	default:
		return PoorRating
	}
}
